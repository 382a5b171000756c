package database

import (
	"bytes"
	"fmt"
	"testing"

	"tokoadmin/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	db, err := Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), false)
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Migrate(db))

	var buf bytes.Buffer
	quiet := db.Session(&gorm.Session{Logger: newGormLogger(&buf, gormlogger.Warn)})

	var user models.User
	err = quiet.First(&user, "email = ?", "nobody@example.com").Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	err = quiet.Table("no_such_table").Count(new(int64)).Error
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "no_such_table")
}
