package main

import (
	"net/http"
	"triphub/src/controllers"
	"triphub/src/middlewares"
	"triphub/src/types"

	"github.com/gin-gonic/gin"
)

func paymentHandlers(g *gin.RouterGroup, api *controllers.API) *gin.RouterGroup {
	g.
		POST("/payment-checkout-session", func(ctx *gin.Context) {
			session, status, err := api.CreateCheckoutSession(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"id": session.ID, "url": session.URL})
		}).
		POST("/payment-success", func(ctx *gin.Context) {
			result, status, err := api.PaymentSuccess(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": result})
		}).
		GET("/payments", func(ctx *gin.Context) {
			payments, status, err := api.OwnPayments(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": payments})
		})
	return g
}

func vendorPaymentHandlers(g *gin.RouterGroup, api *controllers.API) *gin.RouterGroup {
	g.GET("/vendor/payments", middlewares.RequireRole(types.ROLE_VENDOR), func(ctx *gin.Context) {
		payments, status, err := api.VendorPayments(ctx)
		if err != nil {
			ctx.JSON(status, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"data": payments})
	})
	return g
}

func adminPaymentHandlers(g *gin.RouterGroup, api *controllers.API) *gin.RouterGroup {
	g.GET("/payments/all", middlewares.RequireRole(types.ROLE_ADMIN), func(ctx *gin.Context) {
		payments, status, err := api.AllPayments(ctx)
		if err != nil {
			ctx.JSON(status, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"data": payments})
	})
	return g
}
