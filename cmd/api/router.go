package api

import (
	"net/http"

	"taskpro-backend/internal/auth/delivery"
	authUsecase "taskpro-backend/internal/auth/usecase"
	helpDelivery "taskpro-backend/internal/help/delivery"
	kanbanDelivery "taskpro-backend/internal/kanban/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, authHandler *delivery.AuthHandler, kanbanHandler *kanbanDelivery.KanbanHandler, helpHandler *helpDelivery.HelpHandler) {
	requireAuth := delivery.AuthMiddleware(authUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/help", helpHandler.SendHelpRequest)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh-token", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/profile", requireAuth, authHandler.GetProfile)
			auth.PATCH("/profile", requireAuth, authHandler.UpdateProfile)
			auth.POST("/devices", requireAuth, authHandler.RegisterDevice)
			auth.DELETE("/devices/:token", requireAuth, authHandler.UnregisterDevice)
		}

		// Board routes (protected)
		boards := api.Group("/boards")
		boards.Use(requireAuth)
		{
			boards.GET("", kanbanHandler.GetBoards)
			boards.POST("", kanbanHandler.CreateBoard)
			boards.POST("/upload-bg", kanbanHandler.UploadBackground)
			boards.PUT("/:boardId", kanbanHandler.UpdateBoard)
			boards.DELETE("/:boardId", kanbanHandler.DeleteBoard)
			boards.GET("/:boardId/columns", kanbanHandler.GetColumns)
			boards.POST("/:boardId/columns", kanbanHandler.CreateColumn)
			boards.GET("/:boardId/cards", kanbanHandler.SearchCards)
		}

		// Column routes (protected)
		columns := api.Group("/columns")
		columns.Use(requireAuth)
		{
			columns.PUT("/:columnId", kanbanHandler.UpdateColumn)
			columns.DELETE("/:columnId", kanbanHandler.DeleteColumn)
			columns.GET("/:columnId/cards", kanbanHandler.GetCards)
			columns.POST("/:columnId/cards", kanbanHandler.CreateCard)
		}

		// Card routes (protected)
		cards := api.Group("/cards")
		cards.Use(requireAuth)
		{
			cards.PUT("/:cardId", kanbanHandler.UpdateCard)
			cards.DELETE("/:cardId", kanbanHandler.DeleteCard)
			cards.PATCH("/:cardId/move", kanbanHandler.MoveCard)
		}
	}
}
