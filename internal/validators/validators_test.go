package validators

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/umay/models"
)

func validAccount() models.Account {
	return models.Account{
		FullName:        "Айгуль Серикова",
		Login:           "aigul",
		Password:        "secret1",
		PasswordConfirm: "secret1",
		Role:            models.RoleMidwife,
		AppType:         models.AppUmay,
		Email:           "aigul@example.kz",
		Phone:           "+7 (701) 000-00-00",
	}
}

func validRecord() models.BirthRecord {
	return models.BirthRecord{
		PatientName:    "Мария Иванова",
		Age:            27,
		PregnancyWeeks: 39,
		WeightBefore:   72.5,
		WeightAfter:    66,
		BirthDate:      "2024-03-01",
		BirthTime:      "09:40",
		ChildGender:    models.GenderGirl,
		ChildWeight:    3400,
		DeliveryMethod: models.DeliveryNatural,
		BloodLoss:      350,
		LaborDuration:  8.5,
	}
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "expected *ValidationError, got %v", err)
	return vErr.Field
}

func TestAccountValidator_Registration(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	require.NoError(t, v.Validate(ctx, validAccount()))

	noContacts := validAccount()
	noContacts.Email, noContacts.Phone = "", ""
	require.NoError(t, v.Validate(ctx, &noContacts))

	tests := []struct {
		name      string
		mutate    func(a *models.Account)
		wantField string
		wantErr   error
	}{
		{"empty full name", func(a *models.Account) { a.FullName = "  " }, FieldFullName, ErrRequired},
		{"empty login", func(a *models.Account) { a.Login = "" }, FieldLogin, ErrRequired},
		{"login with space", func(a *models.Account) { a.Login = "ai gul" }, FieldLogin, ErrInvalidFormat},
		{"short password", func(a *models.Account) { a.Password, a.PasswordConfirm = "12345", "12345" }, FieldPassword, ErrTooShort},
		{"confirmation mismatch", func(a *models.Account) { a.PasswordConfirm = "secret2" }, FieldPasswordConfirm, ErrPasswordMismatch},
		{"admin self registration", func(a *models.Account) { a.Role = models.RoleAdmin }, FieldRole, ErrNotAllowed},
		{"unknown role", func(a *models.Account) { a.Role = "doctor" }, FieldRole, ErrNotAllowed},
		{"unknown app", func(a *models.Account) { a.AppType = "web" }, FieldAppType, ErrNotAllowed},
		{"bad email", func(a *models.Account) { a.Email = "not-an-email" }, FieldEmail, ErrInvalidFormat},
		{"email with name", func(a *models.Account) { a.Email = "Aigul <aigul@example.kz>" }, FieldEmail, ErrInvalidFormat},
		{"short phone", func(a *models.Account) { a.Phone = "+7701" }, FieldPhone, ErrInvalidFormat},
		{"letters in phone", func(a *models.Account) { a.Phone = "+7701abc0000" }, FieldPhone, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAccount()
			tt.mutate(&a)

			err := v.Validate(ctx, a)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantField, fieldOf(t, err))
		})
	}
}

func TestAccountValidator_Scoped(t *testing.T) {
	v := NewAccountValidator()
	a := models.Account{Login: "aigul", Password: "secret1"}

	assert.NoError(t, v.Validate(context.Background(), a, FieldLogin, FieldPassword))
	assert.ErrorIs(t, v.Validate(context.Background(), a, "nickname"), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
}

func TestAccountValidator_PasswordReset(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.PasswordResetRequest{Login: "aigul", Code: "042917", Password: "newpass", PasswordConfirm: "newpass"}))
	assert.NoError(t, v.Validate(ctx, &models.PasswordResetRequest{Token: "tok", Password: "newpass", PasswordConfirm: "newpass"}))

	err := v.Validate(ctx, models.PasswordResetRequest{Code: "042917", Password: "newpass", PasswordConfirm: "newpass"})
	assert.Equal(t, FieldLogin, fieldOf(t, err))

	err = v.Validate(ctx, models.PasswordResetRequest{Login: "aigul", Code: "42917", Password: "newpass", PasswordConfirm: "newpass"})
	assert.Equal(t, FieldCode, fieldOf(t, err))

	err = v.Validate(ctx, models.PasswordResetRequest{Token: "tok", Password: "newpass", PasswordConfirm: "other"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestBirthRecordValidator(t *testing.T) {
	v := NewBirthRecordValidator()
	ctx := context.Background()

	require.NoError(t, v.Validate(ctx, validRecord()))

	tests := []struct {
		name      string
		mutate    func(r *models.BirthRecord)
		wantField string
		wantErr   error
	}{
		{"no patient name", func(r *models.BirthRecord) { r.PatientName = "" }, FieldPatientName, ErrRequired},
		{"age too low", func(r *models.BirthRecord) { r.Age = 9 }, FieldAge, ErrOutOfRange},
		{"weeks too high", func(r *models.BirthRecord) { r.PregnancyWeeks = 46 }, FieldPregnancyWeeks, ErrOutOfRange},
		{"missing weight", func(r *models.BirthRecord) { r.WeightBefore = 0 }, FieldWeightBefore, ErrOutOfRange},
		{"bad birth date", func(r *models.BirthRecord) { r.BirthDate = "01.03.2024" }, FieldBirthDate, ErrInvalidFormat},
		{"bad birth time", func(r *models.BirthRecord) { r.BirthTime = "25:00" }, FieldBirthTime, ErrInvalidFormat},
		{"unknown gender", func(r *models.BirthRecord) { r.ChildGender = "?" }, FieldChildGender, ErrNotAllowed},
		{"child weight too low", func(r *models.BirthRecord) { r.ChildWeight = 100 }, FieldChildWeight, ErrOutOfRange},
		{"unknown delivery method", func(r *models.BirthRecord) { r.DeliveryMethod = "Другое" }, FieldDeliveryMethod, ErrNotAllowed},
		{"negative blood loss", func(r *models.BirthRecord) { r.BloodLoss = -1 }, FieldBloodLoss, ErrOutOfRange},
		{"labor too long", func(r *models.BirthRecord) { r.LaborDuration = 120 }, FieldLaborDuration, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)

			err := v.Validate(ctx, &r)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantField, fieldOf(t, err))
		})
	}
}

func TestBirthRecordValidator_BoundsInclusive(t *testing.T) {
	v := NewBirthRecordValidator()
	r := validRecord()
	r.Age, r.PregnancyWeeks, r.ChildWeight, r.BloodLoss = MinAge, MaxPregnancyWeeks, MaxChildWeight, 0

	assert.NoError(t, v.Validate(context.Background(), r))
}

func TestArticleValidator(t *testing.T) {
	v := NewArticleValidator()
	ctx := context.Background()
	valid := models.Article{Feed: models.FeedMama, Title: "Питание", Body: "Текст", ImageURL: "/media/a.jpg"}

	require.NoError(t, v.Validate(ctx, valid))

	noFeed := valid
	noFeed.Feed = "blog"
	assert.Equal(t, FieldFeed, fieldOf(t, v.Validate(ctx, noFeed)))

	noBody := valid
	noBody.Body = " "
	assert.Equal(t, FieldBody, fieldOf(t, v.Validate(ctx, &noBody)))

	badMedia := valid
	badMedia.VideoURL = "javascript:alert(1)"
	assert.Equal(t, FieldMedia, fieldOf(t, v.Validate(ctx, badMedia)))
}

func TestValidationError_Message(t *testing.T) {
	err := invalid(FieldLogin, ErrRequired)
	assert.Equal(t, "login: value is required", err.Error())
}
