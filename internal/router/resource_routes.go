package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticketr/internal/handler"
	"github.com/iliyamo/ticketr/internal/middleware"
	"github.com/iliyamo/ticketr/internal/utils"
)

func RegisterUsers(api *echo.Group, h *handler.UserHandler, jwtSecret string) {
	g := api.Group("/users")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/by_email", h.GetByEmail)
	g.POST("/login", h.Login)
	g.GET("/me", h.Me, middleware.JWTAuth(jwtSecret), middleware.RequireKind(utils.KindUser))
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func RegisterOrganizations(api *echo.Group, h *handler.OrganizationHandler, jwtSecret string) {
	g := api.Group("/organizations")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.POST("/login", h.Login)
	g.GET("/me", h.Me, middleware.JWTAuth(jwtSecret), middleware.RequireKind(utils.KindOrganization))
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// RegisterEvents mounts the event routes; cache wraps the reads only.
func RegisterEvents(api *echo.Group, h *handler.EventHandler, cache echo.MiddlewareFunc) {
	g := api.Group("/events")
	g.POST("", h.Create)
	g.GET("", h.List, cache)
	g.GET("/by_org/:id", h.ListByOrg, cache)
	g.GET("/:id", h.Get, cache)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func RegisterTickets(api *echo.Group, h *handler.TicketHandler) {
	g := api.Group("/tickets")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/event/:id", h.ListByEvent)
	g.GET("/by_event/:id", h.ListByEvent)
	g.GET("/by_user/:id", h.ListByUser)
	g.GET("/:id", h.Get)
	g.GET("/:id/qr", h.QR)
	g.POST("/:id/check-in", h.CheckIn)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func RegisterPayments(api *echo.Group, h *handler.PaymentHandler) {
	g := api.Group("/payments")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/by_user/:id", h.ListByUser)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func RegisterAdvertisements(api *echo.Group, h *handler.AdvertisementHandler) {
	g := api.Group("/advertisements")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/by_event/:id", h.ListByEvent)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// RegisterChats mounts the chat log and the recommendation endpoint. POST /
// runs the matcher; POST /records stores a row verbatim.
func RegisterChats(api *echo.Group, h *handler.ChatHandler) {
	g := api.Group("/chats")
	g.POST("", h.Chat)
	g.POST("/records", h.CreateRecord)
	g.GET("", h.List)
	g.GET("/by_user/:id", h.ListByUser)
	g.GET("/recommended/:event_id", h.ListByRecommendedEvent)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
