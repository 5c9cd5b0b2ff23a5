// Package http wires the REST and WebSocket surface over the dispatcher.
// Handlers stay thin: decode, dispatch, map errors to status codes.
package http

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Shivansh1606/advocate-chat-app/internal/adapters/ws"
	"github.com/Shivansh1606/advocate-chat-app/internal/app"
	"github.com/Shivansh1606/advocate-chat-app/internal/config"
	"github.com/Shivansh1606/advocate-chat-app/internal/storage"
)

type Deps struct {
	Dispatch  *app.Dispatcher
	Clients   *storage.ClientRepository
	Bookings  *storage.BookingRepository
	Messages  *storage.MessageRepository
	Advocates *Directory
	ChatWS    *ws.Relay
}

func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("AdvocateSessions", store))

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	chat := &ChatHandlers{Dispatch: deps.Dispatch}
	rtc := &WebRTCHandlers{Dispatch: deps.Dispatch}
	booking := &BookingHandlers{Clients: deps.Clients, Bookings: deps.Bookings, Advocates: deps.Advocates}
	admin := &AdminHandlers{Key: cfg.AdminKey, Clients: deps.Clients, Bookings: deps.Bookings, Messages: deps.Messages}

	api := r.Group("/api")
	{
		api.POST("/chat/send", chat.Send)
		api.GET("/chat/messages", chat.Poll)

		api.POST("/webrtc/join", rtc.Join)
		api.POST("/webrtc/leave", rtc.Leave)
		api.POST("/webrtc/signal", rtc.Signal)
		api.GET("/webrtc/signals", rtc.Poll)

		api.GET("/advocates", booking.ListAdvocates)
		api.POST("/register", booking.RegisterClient)
		api.POST("/meetings", booking.CreateBooking)

		api.POST("/admin/login", admin.Login)
		guarded := api.Group("/admin", admin.Require)
		{
			guarded.POST("/logout", admin.Logout)
			guarded.GET("/meetings", admin.ListMeetings)
			guarded.POST("/meetings/:id/status", admin.UpdateMeetingStatus)
			guarded.GET("/clients", admin.ListClients)
			guarded.GET("/stats", admin.Stats)
		}
	}

	if deps.ChatWS != nil {
		r.GET("/ws/chat", deps.ChatWS.Handle)
	}

	return r
}
