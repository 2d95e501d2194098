package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"asistenciapp_backend/internals/features/attendance/model"
	eventModel "asistenciapp_backend/internals/features/events/model"
	authService "asistenciapp_backend/internals/features/users/auth/service"
	userModel "asistenciapp_backend/internals/features/users/user/model"
	helper "asistenciapp_backend/internals/helpers"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&eventModel.EventModel{},
		&model.AttendanceModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, faceImage []byte) *userModel.UserModel {
	t.Helper()

	user := userModel.UserModel{
		Name:      "Laura Gómez",
		Email:     uuid.NewString() + "@example.com",
		Password:  "hash-irrelevante",
		Role:      "user",
		FaceImage: faceImage,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedEvent(t *testing.T, db *gorm.DB, organizer uuid.UUID) *eventModel.EventModel {
	t.Helper()

	event := eventModel.EventModel{
		Name:        "Charla de bienvenida",
		Description: "Auditorio principal",
		Date:        time.Now().Add(48 * time.Hour),
		OrganizerID: organizer,
	}
	require.NoError(t, db.Create(&event).Error)
	return &event
}

func makeFaceImage(t *testing.T, seed uint8) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 320, 320))
	for y := 0; y < 320; y++ {
		for x := 0; x < 320; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x) + seed, G: uint8(y), B: seed, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func mustNormalize(t *testing.T, raw []byte) []byte {
	t.Helper()

	normalized, err := helper.NormalizeFaceImage(raw)
	require.NoError(t, err)
	return normalized
}

func TestRegisterSimple(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, nil)
	event := seedEvent(t, db, user.ID)

	record, err := RegisterSimple(db, user.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, record.UserID)
	require.NotNil(t, record.EventID)
	assert.Equal(t, event.ID, *record.EventID)
	assert.False(t, record.Verified)

	// el set de asistentes queda consistente en la misma transacción
	events, err := ListEventsForUser(db, user.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)
}

func TestRegisterSimpleRejectsDuplicate(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, nil)
	event := seedEvent(t, db, user.ID)

	_, err := RegisterSimple(db, user.ID, event.ID)
	require.NoError(t, err)

	_, err = RegisterSimple(db, user.ID, event.ID)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	var count int64
	require.NoError(t, db.Model(&model.AttendanceModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "como máximo un registro por par usuario-evento")
}

func TestRegisterSimpleEventNotFound(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, nil)

	_, err := RegisterSimple(db, user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRegisterWithFaceMatch(t *testing.T) {
	db := openTestDB(t)
	src := makeFaceImage(t, 5)
	user := seedUser(t, db, mustNormalize(t, src))
	event := seedEvent(t, db, user.ID)

	record, err := RegisterWithFace(db, user.ID, event.ID, src)
	require.NoError(t, err)
	assert.True(t, record.Verified)
}

func TestRegisterWithFaceMismatchStillRegisters(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, mustNormalize(t, makeFaceImage(t, 5)))
	event := seedEvent(t, db, user.ID)

	record, err := RegisterWithFace(db, user.ID, event.ID, makeFaceImage(t, 200))
	require.NoError(t, err, "el mismatch no es un error: el registro se crea igualmente")
	assert.False(t, record.Verified)

	var count int64
	require.NoError(t, db.Model(&model.AttendanceModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterWithFaceNoReferenceImage(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, nil)
	event := seedEvent(t, db, user.ID)

	_, err := RegisterWithFace(db, user.ID, event.ID, makeFaceImage(t, 5))
	assert.ErrorIs(t, err, ErrNoReferenceImage)
}

func TestVerifyStandaloneWithEvent(t *testing.T) {
	db := openTestDB(t)
	src := makeFaceImage(t, 5)
	user := seedUser(t, db, mustNormalize(t, src))
	event := seedEvent(t, db, user.ID)

	found, record, err := VerifyStandalone(db, src, &event.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, record.Verified)

	// el invariante de registro único aplica también en la vía de kiosco
	_, _, err = VerifyStandalone(db, src, &event.ID)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestVerifyStandaloneUnknownFace(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, mustNormalize(t, makeFaceImage(t, 5)))

	_, _, err := VerifyStandalone(db, makeFaceImage(t, 200), nil)
	assert.ErrorIs(t, err, authService.ErrNoFaceMatch)
}

func TestVerifyStandaloneWithoutEvent(t *testing.T) {
	db := openTestDB(t)
	src := makeFaceImage(t, 5)
	user := seedUser(t, db, mustNormalize(t, src))

	found, record, err := VerifyStandalone(db, src, nil)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Nil(t, record.EventID)
	assert.True(t, record.Verified)

	// sin evento no hay índice que colisione: puede repetirse
	_, _, err = VerifyStandalone(db, src, nil)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.AttendanceModel{}).Where("event_id IS NULL").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestListAllFiltersByEvent(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, nil)
	other := seedUser(t, db, nil)
	eventA := seedEvent(t, db, user.ID)
	eventB := seedEvent(t, db, user.ID)

	_, err := RegisterSimple(db, user.ID, eventA.ID)
	require.NoError(t, err)
	_, err = RegisterSimple(db, other.ID, eventA.ID)
	require.NoError(t, err)
	_, err = RegisterSimple(db, user.ID, eventB.ID)
	require.NoError(t, err)

	records, err := ListAll(db, Filter{EventID: &eventA.ID})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	for _, r := range records {
		require.NotNil(t, r.EventID)
		assert.Equal(t, eventA.ID, *r.EventID)
	}

	all, err := ListAll(db, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
