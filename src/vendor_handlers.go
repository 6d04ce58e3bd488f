package main

import (
	"net/http"
	"triphub/src/controllers"
	"triphub/src/middlewares"
	"triphub/src/types"

	"github.com/gin-gonic/gin"
)

func vendorHandlers(g *gin.RouterGroup, api *controllers.API) *gin.RouterGroup {
	g.
		POST("/vendors", func(ctx *gin.Context) {
			vendor, status, err := api.ApplyVendor(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": vendor})
		}).
		POST("/vendors/image-url", func(ctx *gin.Context) {
			upload, status, err := api.VendorImageURL(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": upload})
		})

	admin := g.Group("", middlewares.RequireRole(types.ROLE_ADMIN))
	admin.
		GET("/vendors", func(ctx *gin.Context) {
			vendors, status, err := api.ListVendors(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": vendors})
		}).
		PATCH("/vendors/:id/status", func(ctx *gin.Context) {
			vendor, status, err := api.SetVendorStatus(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": vendor})
		}).
		PATCH("/vendors/fraud", func(ctx *gin.Context) {
			result, status, err := api.FlagFraud(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error(), "data": result})
				return
			}
			ctx.JSON(status, gin.H{"data": result})
		})
	return g
}
