package main

import (
	"ace-zone.backend/internal/interfaces/http/handlers"
	"ace-zone.backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

type routeDeps struct {
	matchHandler   *handlers.MatchHandler
	paymentHandler *handlers.PaymentHandler
	profileHandler *handlers.ProfileHandler
	authMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Match routes (public read)
		matches := v1.Group("/matches")
		{
			matches.GET("", d.matchHandler.ListMatches)
			matches.GET("/:id", d.matchHandler.GetMatch)
		}

		// Match routes (protected)
		matchesAuth := v1.Group("/matches")
		matchesAuth.Use(d.authMiddleware)
		{
			matchesAuth.GET("/mine", d.matchHandler.MyMatches)
			matchesAuth.POST("/:id/join", middleware.IdempotencyMiddleware(), d.matchHandler.JoinMatch)
			matchesAuth.POST("/:id/book-all", middleware.IdempotencyMiddleware(), d.matchHandler.BookAllSlots)
		}

		// Profile routes (protected)
		profile := v1.Group("/profile")
		profile.Use(d.authMiddleware)
		{
			profile.PUT("", d.profileHandler.SaveProfile)
			profile.GET("", d.profileHandler.GetProfile)
			profile.GET("/role", d.profileHandler.GetRole)
			profile.GET("/is-admin", d.profileHandler.IsAdmin)
		}

		// Payment routes (protected)
		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.POST("", middleware.IdempotencyMiddleware(), d.paymentHandler.SubmitPayment)
			payments.GET("/status/:matchId", d.paymentHandler.GetPaymentStatus)
			payments.GET("/history", d.paymentHandler.TransactionHistory)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.POST("/matches", d.matchHandler.CreateMatch)
			admin.DELETE("/matches/:id", d.matchHandler.DeleteMatch)
			admin.PUT("/matches/:id/status", d.matchHandler.SetMatchStatus)
			admin.GET("/matches/:id/participants", d.matchHandler.MatchParticipants)

			admin.GET("/payments", d.paymentHandler.ListPayments)
			admin.GET("/payments/pending", d.paymentHandler.PendingPayments)
			admin.PUT("/payments/:id/approve", d.paymentHandler.ApprovePayment)
			admin.PUT("/payments/:id/reject", d.paymentHandler.RejectPayment)
			admin.PUT("/payments/:id/refund", d.paymentHandler.RefundPayment)

			admin.GET("/users", d.profileHandler.ListUsers)
			admin.GET("/users/:id", d.profileHandler.GetUser)
			admin.PUT("/users/:id", d.profileHandler.UpdateUser)
			admin.DELETE("/users/:id", d.profileHandler.DeleteUser)
			admin.PUT("/users/:id/role", d.profileHandler.AssignRole)
		}
	}
}
