package main

import (
	"log"
	"net/http"
	"os"
	"triphub/src/controllers"
	"triphub/src/middlewares"
	"triphub/src/types"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup, api *controllers.API) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			booking, status, err := api.CreateBooking(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": booking})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			bookings, status, err := api.OwnBookings(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings})
		}).
		GET("/bookings/:id/qrcode", func(ctx *gin.Context) {
			filepath, status, err := api.BookingQRCode(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.FileAttachment(*filepath, "eticket.jpeg")
			if err := os.Remove(*filepath); err != nil {
				log.Printf("Could not remove e-ticket file [%s]: %s\n", *filepath, err.Error())
			}
		})
	return g
}

func vendorBookingHandlers(g *gin.RouterGroup, api *controllers.API) *gin.RouterGroup {
	vendor := middlewares.RequireRole(types.ROLE_VENDOR)
	g.
		GET("/vendor/bookings", vendor, func(ctx *gin.Context) {
			bookings, status, err := api.VendorBookings(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings})
		}).
		POST("/vendor/bookings/verify", vendor, func(ctx *gin.Context) {
			booking, status, err := api.VerifyETicket(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": booking})
		}).
		PATCH("/bookings/:id", vendor, func(ctx *gin.Context) {
			status, err := api.SetBookingStatus(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(status)
		})
	return g
}
