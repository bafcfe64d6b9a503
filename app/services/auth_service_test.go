package services

import (
	"context"
	"testing"

	"github.com/Wege0921/prodev-be-ecommerce/app/jobs"
	"github.com/Wege0921/prodev-be-ecommerce/app/repositories"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/apperr"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) (*AuthService, *dispatchRecorder) {
	svc := NewAuthService(repositories.NewUserRepository(db))
	rec := &dispatchRecorder{}
	svc.dispatch = rec.record
	return svc, rec
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0911234567", "+251911234567"},
		{"911234567", "+251911234567"},
		{"251911234567", "+251911234567"},
		{"+251911234567", "+251911234567"},
		{"09 11 23 45 67", "+251911234567"},
		{"0712345678", "+251712345678"},
	}
	for _, tc := range cases {
		got, err := NormalizePhone(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "12345", "0811234567", "2519112345", "+14155550123"} {
		_, err := NormalizePhone(bad)
		require.Error(t, err, bad)
		assert.True(t, apperr.IsValidation(err), bad)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := testDB(t)
	svc, _ := newAuthService(db)

	pair, err := svc.Register(context.Background(), RegisterInput{
		Name:  "Abebe",
		Phone: "0911234567",
		PIN:   "123456",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "+251911234567", pair.User.Phone)
	assert.NotEqual(t, "123456", pair.User.Password, "PIN must be stored hashed")

	claims, err := auth.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, pair.User.ID, claims.UserID)

	// duplicate phone, any formatting
	_, err = svc.Register(context.Background(), RegisterInput{
		Name:  "Kebede",
		Phone: "+251911234567",
		PIN:   "654321",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	_, err = svc.Login(context.Background(), LoginInput{Phone: "911234567", PIN: "123456"})
	require.NoError(t, err)

	// wrong PIN and unknown phone read identically
	_, errWrongPIN := svc.Login(context.Background(), LoginInput{Phone: "911234567", PIN: "000000"})
	_, errNoUser := svc.Login(context.Background(), LoginInput{Phone: "922334455", PIN: "123456"})
	require.Error(t, errWrongPIN)
	require.Error(t, errNoUser)
	assert.Equal(t, errWrongPIN.Error(), errNoUser.Error())
}

func TestRegisterRejectsBadPIN(t *testing.T) {
	db := testDB(t)
	svc, _ := newAuthService(db)

	for _, pin := range []string{"", "12345", "1234567", "12345a"} {
		_, err := svc.Register(context.Background(), RegisterInput{
			Name:  "Abebe",
			Phone: "0911234567",
			PIN:   pin,
		})
		require.Error(t, err, pin)
		assert.True(t, apperr.IsValidation(err), pin)
	}
}

func TestResetPINRotatesHashAndQueuesDelivery(t *testing.T) {
	db := testDB(t)
	svc, rec := newAuthService(db)

	pair, err := svc.Register(context.Background(), RegisterInput{
		Name:  "Abebe",
		Phone: "0911234567",
		PIN:   "123456",
	})
	require.NoError(t, err)
	oldHash := pair.User.Password

	require.NoError(t, svc.ResetPIN(context.Background(), "0911234567"))

	user, err := repositories.NewUserRepository(db).Find(pair.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, user.Password)

	jobsSent := rec.all()
	require.Len(t, jobsSent, 1)
	notif, ok := jobsSent[0].(*jobs.PasswordResetNotification)
	require.True(t, ok)
	assert.Equal(t, "+251911234567", notif.Phone)
	assert.Len(t, notif.PIN, 6)
	assert.True(t, auth.CheckPIN(user.Password, notif.PIN), "stored hash must match the delivered PIN")

	// the old PIN no longer works, the new one does
	_, err = svc.Login(context.Background(), LoginInput{Phone: "0911234567", PIN: "123456"})
	require.Error(t, err)
	_, err = svc.Login(context.Background(), LoginInput{Phone: "0911234567", PIN: notif.PIN})
	require.NoError(t, err)
}

func TestResetPINUnknownNumberStaysSilent(t *testing.T) {
	db := testDB(t)
	svc, rec := newAuthService(db)

	require.NoError(t, svc.ResetPIN(context.Background(), "0911234567"))
	assert.Empty(t, rec.all())
}
