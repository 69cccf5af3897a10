package httperr

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessErrorsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("confirm: %w", ErrBusiness("time_conflict"))

	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.False(t, IsBusiness(err, "service_not_found"))
	assert.Equal(t, "time_conflict", BusinessCode(err))
	assert.Equal(t, "", BusinessCode(fmt.Errorf("plain")))
}

func TestPgCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	exclusion := &pgconn.PgError{Code: "23P01"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsExclusionConflict(unique))
	assert.True(t, IsExclusionConflict(exclusion))
	assert.False(t, IsUniqueViolation(fmt.Errorf("other")))
}

func TestWriteBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Conflict(c, "already_confirmed", "Appointment already confirmed.")

	require.Equal(t, http.StatusConflict, rec.Code)
	var body HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "already_confirmed", body.Code)
	assert.Equal(t, "Appointment already confirmed.", body.Message)
}
