package validator

import (
	"testing"

	domainerrors "shopfront/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Email           string `form:"email" validate:"required,max=120"`
	Phone           string `form:"phone" validate:"required,phone"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	Birthday        string `form:"birthday" validate:"omitempty,datetime=2006-01-02"`
}

func TestCustomValidator(t *testing.T) {
	v := New()

	valid := contactForm{Email: "a@x.com", Phone: "+639171234567", Password: "p", ConfirmPassword: "p", Birthday: "1990-05-01"}
	require.NoError(t, v.Validate(valid))

	tests := []struct {
		name   string
		modify func(*contactForm)
		want   string
	}{
		{name: "missing email", modify: func(f *contactForm) { f.Email = "" }, want: "Email is required."},
		{name: "short phone", modify: func(f *contactForm) { f.Phone = "12345" }, want: "Enter a valid phone number."},
		{name: "letters in phone", modify: func(f *contactForm) { f.Phone = "+63abc45678" }, want: "Enter a valid phone number."},
		{name: "confirm mismatch", modify: func(f *contactForm) { f.ConfirmPassword = "q" }, want: "Passwords do not match."},
		{name: "bad birthday", modify: func(f *contactForm) { f.Birthday = "01/05/1990" }, want: "Birthday must be a date in YYYY-MM-DD format."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.modify(&form)

			err := v.Validate(form)
			require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
			appErr, ok := domainerrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, appErr.Details())
		})
	}
}
