package utils_test

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poi-microservice/internal/pkg/errors"
	"github.com/poi-microservice/internal/pkg/utils"
)

func TestInternalError(t *testing.T) {
	cause := stderrors.New("pq: relation \"pois\" does not exist")

	dev := utils.InternalError(cause, false)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", dev.Code)
	assert.Equal(t, cause.Error(), dev.Message)

	prod := utils.InternalError(cause, true)
	assert.Equal(t, "Internal server error", prod.Message)
	assert.Equal(t, "Internal server error", errors.ErrInternalServer.Message)
}

func TestSendError(t *testing.T) {
	app := fiber.New()
	app.Get("/app", func(c *fiber.Ctx) error {
		return utils.SendError(c, errors.ErrPOINotFound)
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return utils.SendError(c, stderrors.New("boom"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/app", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var payload map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "POI_NOT_FOUND", payload["error"]["code"])

	// default fiber error handler turns unknown errors into 500
	resp, err = app.Test(httptest.NewRequest("GET", "/plain", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
