package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-admin/controllers"
	"hotel-admin/middleware"
)

// Options holds the router settings that come from configuration.
type Options struct {
	CORSOrigins     []string
	UploadDir       string
	ChannelImageDir string
	MaxUploadBytes  int64
}

// Handlers bundles the controllers the router dispatches to.
type Handlers struct {
	Auth       *controllers.AuthController
	Rooms      *controllers.RoomController
	Facilities *controllers.FacilityController
	Messages   *controllers.MessageController
	Channels   *controllers.ChannelController
	Groups     *controllers.GroupController
	Apps       *controllers.AppController
	Background *controllers.BackgroundController
	Launcher   *controllers.LauncherController
	Health     *controllers.HealthController
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

// SetupRouter wires every route. auth guards everything except health,
// registration, login and the launcher feed.
func SetupRouter(opts Options, h Handlers, auth gin.HandlerFunc, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(log), gin.Recovery())
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	r.Use(middleware.BodyLimit(opts.MaxUploadBytes))

	r.Static("/uploads", opts.UploadDir)
	r.Static("/TVLauncher/livetv", opts.ChannelImageDir)

	r.GET("/health", h.Health.Health)
	r.GET("/health/db", h.Health.Database)

	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)
	r.GET("/launcher/:mac", h.Launcher.GetFeed)

	api := r.Group("/", auth)
	{
		api.POST("/logout", h.Auth.Logout)
		api.GET("/me", h.Auth.Me)

		rooms := api.Group("/rooms")
		{
			rooms.GET("", h.Rooms.GetRooms)
			rooms.GET("/export", h.Rooms.ExportRooms)
			rooms.POST("/add", h.Rooms.CreateRoom)
			rooms.PUT("/:id", h.Rooms.UpdateRoom)
			rooms.DELETE("/:id", h.Rooms.DeleteRoom)
		}

		facilities := api.Group("/facilities")
		{
			facilities.GET("", h.Facilities.GetFacilities)
			facilities.POST("/add", h.Facilities.CreateFacility)
			facilities.PUT("/:id", h.Facilities.UpdateFacility)
			facilities.DELETE("/:id", h.Facilities.DeleteFacility)
		}

		messages := api.Group("/messages")
		{
			messages.GET("", h.Messages.GetMessages)
			messages.POST("/add", h.Messages.CreateMessage)
			messages.PUT("/:id", h.Messages.UpdateMessage)
			messages.DELETE("/:id", h.Messages.DeleteMessage)
		}

		channels := api.Group("/channels")
		{
			channels.GET("", h.Channels.GetChannels)
			channels.POST("/add", h.Channels.CreateChannel)
			channels.PUT("/:id", h.Channels.UpdateChannel)
			channels.DELETE("/:id", h.Channels.DeleteChannel)
		}

		groups := api.Group("/groups")
		{
			groups.GET("", h.Groups.GetGroups)
			groups.POST("", h.Groups.CreateGroup)
			groups.PUT("/:id", h.Groups.UpdateGroup)
			groups.DELETE("/:id", h.Groups.DeleteGroup)
		}

		apps := api.Group("/apps")
		{
			apps.GET("", h.Apps.GetApps)
			apps.POST("/add", h.Apps.CreateApp)
			apps.PUT("/:id", h.Apps.UpdateApp)
			apps.DELETE("/:id", h.Apps.DeleteApp)
		}

		api.GET("/backgrounds", h.Background.GetBackgrounds)
		api.POST("/upload-background", h.Background.UploadBackground)
	}

	return r
}
