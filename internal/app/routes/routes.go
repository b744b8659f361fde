package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rct/connect/internal/app/controllers"
	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/middleware"
	"github.com/rct/connect/internal/pkg/ws"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	postController *controllers.PostController,
	storyController *controllers.StoryController,
	courseController *controllers.CourseController,
	messageController *controllers.MessageController,
	notificationController *controllers.NotificationController,
	settingsController *controllers.SettingsController,
	wsHandler *ws.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewMessageResponse("ok"))
	})

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", authMiddleware.JWTAuth(), authController.Me)
	}

	// --- Read-only routes, personalized when a token is present ---
	optional := api.Group("")
	optional.Use(authMiddleware.OptionalAuth())
	{
		optional.GET("/events", eventController.GetAllEvents)
		optional.GET("/events/:id", eventController.GetEventByID)
		optional.GET("/posts", postController.GetAllPosts)
		optional.GET("/posts/:id", postController.GetPostByID)
		optional.GET("/posts/:id/comments", postController.GetComments)
		optional.GET("/stories", storyController.GetActiveStories)
		optional.GET("/stories/:id", storyController.GetStoryByID)
		optional.GET("/courses", courseController.GetAllCourses)
		optional.GET("/courses/:id", courseController.GetCourseByID)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		events := authenticated.Group("/events")
		{
			events.POST("/:id/join", eventController.JoinEvent)
			events.DELETE("/:id/leave", eventController.LeaveEvent)

			eventsCoach := events.Group("")
			eventsCoach.Use(authMiddleware.RequireRole(models.RoleCoach, models.RoleAdmin))
			{
				eventsCoach.POST("", eventController.CreateEvent)
			}
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
		}

		posts := authenticated.Group("/posts")
		{
			posts.POST("", postController.CreatePost)
			posts.PUT("/:id", postController.UpdatePost)
			posts.DELETE("/:id", postController.DeletePost)
			posts.POST("/:id/like", postController.ToggleLike)
			posts.POST("/:id/comments", postController.AddComment)
			posts.DELETE("/:id/comments/:commentId", postController.DeleteComment)
		}

		stories := authenticated.Group("/stories")
		{
			stories.POST("", storyController.CreateStory)
			stories.DELETE("/:id", storyController.DeleteStory)
			stories.POST("/:id/view", storyController.ViewStory)
		}

		courses := authenticated.Group("/courses")
		{
			courses.POST("", courseController.CreateCourse)
			courses.PUT("/:id", courseController.UpdateCourse)
			courses.DELETE("/:id", courseController.DeleteCourse)
			courses.POST("/:id/rate", courseController.RateCourse)
		}

		messages := authenticated.Group("/messages")
		{
			messages.GET("/conversations", messageController.GetConversations)
			messages.POST("/conversations", messageController.StartConversation)
			messages.GET("/conversations/:id", messageController.GetConversation)
			messages.POST("/conversations/:id", messageController.SendMessage)
			messages.DELETE("/conversations/:id/leave", messageController.LeaveConversation)
			messages.PUT("/:messageId/read", messageController.MarkMessageRead)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.GetNotifications)
			notifications.PUT("/:id/read", notificationController.MarkRead)
			notifications.PUT("/read-all", notificationController.MarkAllRead)
			notifications.DELETE("/:id", notificationController.DeleteNotification)

			notificationsCoach := notifications.Group("")
			notificationsCoach.Use(authMiddleware.RequireRole(models.RoleCoach, models.RoleAdmin))
			{
				notificationsCoach.POST("/broadcast", notificationController.Broadcast)
			}
		}

		settings := authenticated.Group("/settings")
		{
			settings.GET("", settingsController.GetSettings)
			settings.PUT("", settingsController.UpdateSettings)
			settings.PUT("/theme", settingsController.UpdateTheme)
			settings.PUT("/language", settingsController.UpdateLanguage)
			settings.PUT("/notifications", settingsController.UpdateNotificationPrefs)
		}
	}

	// WebSocket handshake authenticates via query token, not middleware
	api.GET("/ws", wsHandler.HandleConnection)
}
