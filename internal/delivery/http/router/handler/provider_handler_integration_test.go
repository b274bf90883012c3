package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fixly/internal/delivery/http/validator"
	"fixly/internal/domain/entity"
	domainerrors "fixly/internal/domain/errors"
	"fixly/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubProviderUsecase records the input it was called with and returns canned
// results.
type stubProviderUsecase struct {
	registered *usecase.RegisterProviderInput
	out        *usecase.SignUpOutput
	err        error
}

func (s *stubProviderUsecase) RegisterProvider(_ context.Context, input *usecase.RegisterProviderInput) (*usecase.SignUpOutput, error) {
	s.registered = input

	return s.out, s.err
}

func (s *stubProviderUsecase) GetProfile(context.Context, uuid.UUID) (*entity.ProviderProfile, error) {
	return nil, nil
}

func (s *stubProviderUsecase) UpdateProfile(context.Context, *usecase.UpdateProviderProfileInput) (*entity.ProviderProfile, error) {
	return nil, nil
}

func (s *stubProviderUsecase) SetAvailability(context.Context, uuid.UUID, bool) (*entity.ProviderProfile, error) {
	return nil, nil
}

func newRegisterContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/register/provider", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestProviderHandler_Register_Integration(t *testing.T) {
	stub := &stubProviderUsecase{
		out: &usecase.SignUpOutput{
			User: &entity.User{
				ID:     uuid.New(),
				Name:   "Jane Doe",
				Email:  "jane@example.com",
				Role:   entity.RoleProvider,
				Status: entity.ApprovalPending,
			},
		},
	}
	handler := NewProviderHandler(stub, newDiscardLogger())

	c, rec := newRegisterContext(t, `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"password": "Password123",
		"confirmPassword": "Password123",
		"businessName": "Jane's Plumbing",
		"category": "plumber"
	}`)

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)

	require.NotNil(t, stub.registered)
	assert.Equal(t, "jane@example.com", stub.registered.Email)
	assert.Equal(t, entity.CategoryPlumber, stub.registered.Category)
	// The confirmation never leaves the handler.
	assert.Equal(t, "Password123", stub.registered.Password)
}

func TestProviderHandler_Register_PasswordMismatch(t *testing.T) {
	stub := &stubProviderUsecase{}
	handler := NewProviderHandler(stub, newDiscardLogger())

	// The confirmation check runs server-side, not just in the client form.
	c, _ := newRegisterContext(t, `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"password": "Password123",
		"confirmPassword": "Different123",
		"businessName": "Jane's Plumbing",
		"category": "plumber"
	}`)

	err := handler.Register(c)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, stub.registered)
}

func TestProviderHandler_Register_MissingRequiredFields(t *testing.T) {
	stub := &stubProviderUsecase{}
	handler := NewProviderHandler(stub, newDiscardLogger())

	c, _ := newRegisterContext(t, `{"email": "jane@example.com"}`)

	err := handler.Register(c)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, stub.registered)
}
