package handlers_fiber

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/usecase"
)

type statusMock struct{ mock.Mock }

var _ usecase.StatusUsecaseInterface = (*statusMock)(nil)

func (m *statusMock) Status() entities.SessionStatus {
	return m.Called().Get(0).(entities.SessionStatus)
}

func newApp(uc usecase.StatusUsecaseInterface) *fiber.App {
	app := fiber.New()
	NewHandler(zap.NewNop().Sugar(), uc).RegisterRoutes(app)
	return app
}

func TestHealthz(t *testing.T) {
	app := newApp(&statusMock{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatuszConnected(t *testing.T) {
	uc := &statusMock{}
	uc.On("Status").Return(entities.SessionStatus{
		Connected:   true,
		BotUsername: "roles-bot",
		GuildCount:  1,
	})
	app := newApp(uc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/statusz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body entities.SessionStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Connected)
	require.Equal(t, "roles-bot", body.BotUsername)
}

func TestStatuszDisconnected(t *testing.T) {
	uc := &statusMock{}
	uc.On("Status").Return(entities.SessionStatus{Connected: false})
	app := newApp(uc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/statusz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
