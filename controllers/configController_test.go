package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Test GetCommunityConfig - view endpoint
func TestGetCommunityConfig(t *testing.T) {
	t.Run("configuration exists", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .* FROM "config"`).WillReturnRows(fullConfigRows())

		c, w := SetupTestContext()
		SetAuthenticatedMember(c, MockAdminMember())
		c.Params = []gin.Param{{Key: "community_id", Value: "100200300400"}}
		c.Request = httptest.NewRequest("GET", "/communities/100200300400/config", nil)

		GetCommunityConfig(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &response)
		config := response["config"].(map[string]interface{})
		assert.Equal(t, float64(mockVerifierRoleID), config["verifierRoleId"])
	})

	t.Run("no configuration yet", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .* FROM "config"`).
			WillReturnRows(sqlmock.NewRows([]string{"config_id"}))

		c, w := SetupTestContext()
		SetAuthenticatedMember(c, MockAdminMember())
		c.Params = []gin.Param{{Key: "community_id", Value: "100200300400"}}
		c.Request = httptest.NewRequest("GET", "/communities/100200300400/config", nil)

		GetCommunityConfig(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Test UpdateCommunityConfig - partial upsert semantics
func TestUpdateCommunityConfig(t *testing.T) {
	t.Run("first write creates the row", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO "config" .* ON CONFLICT`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery(`SELECT .* FROM "config"`).WillReturnRows(fullConfigRows())

		c, w := SetupTestContext()
		SetAuthenticatedMember(c, MockAdminMember())
		c.Params = []gin.Param{{Key: "community_id", Value: "100200300400"}}
		c.Request = httptest.NewRequest("PATCH", "/communities/100200300400/config",
			bytes.NewBufferString(`{"verifierRoleId":700800900}`))
		c.Request.Header.Set("Content-Type", "application/json")

		UpdateCommunityConfig(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("later write touches only provided fields", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectExec(`ON CONFLICT \("?community_id"?\) DO UPDATE SET .*"lore_channel_id"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT .* FROM "config"`).WillReturnRows(fullConfigRows())

		c, w := SetupTestContext()
		SetAuthenticatedMember(c, MockAdminMember())
		c.Params = []gin.Param{{Key: "community_id", Value: "100200300400"}}
		c.Request = httptest.NewRequest("PATCH", "/communities/100200300400/config",
			bytes.NewBufferString(`{"loreChannelId":9999}`))
		c.Request.Header.Set("Content-Type", "application/json")

		UpdateCommunityConfig(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid community ID", func(t *testing.T) {
		_, _, cleanup := SetupTestDB(t)
		defer cleanup()

		c, w := SetupTestContext()
		SetAuthenticatedMember(c, MockAdminMember())
		c.Params = []gin.Param{{Key: "community_id", Value: "invalid"}}
		c.Request = httptest.NewRequest("PATCH", "/communities/invalid/config", bytes.NewBufferString(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		UpdateCommunityConfig(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
