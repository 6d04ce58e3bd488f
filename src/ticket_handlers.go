package main

import (
	"log"
	"net/http"
	"triphub/src/controllers"
	"triphub/src/middlewares"
	"triphub/src/types"

	"github.com/gin-gonic/gin"
)

func publicTicketHandlers(g *gin.RouterGroup, api *controllers.API) *gin.RouterGroup {
	g.
		GET("/tickets", func(ctx *gin.Context) {
			tickets, status, err := api.ListTickets(ctx)
			if err != nil {
				log.Printf("Error retrieving Tickets: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tickets})
		}).
		GET("/tickets/latest", func(ctx *gin.Context) {
			tickets, status, err := api.LatestTickets(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tickets})
		}).
		GET("/tickets/advertised", func(ctx *gin.Context) {
			tickets, status, err := api.AdvertisedTickets(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tickets})
		}).
		GET("/tickets/:id", func(ctx *gin.Context) {
			ticket, status, err := api.GetTicket(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticket})
		})
	return g
}

func vendorTicketHandlers(g *gin.RouterGroup, api *controllers.API) *gin.RouterGroup {
	vendor := middlewares.RequireRole(types.ROLE_VENDOR)
	g.
		POST("/tickets", vendor, func(ctx *gin.Context) {
			ticket, status, err := api.CreateTicket(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": ticket})
		}).
		PATCH("/tickets/:id", vendor, func(ctx *gin.Context) {
			ticket, status, err := api.UpdateTicket(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": ticket})
		}).
		DELETE("/tickets/:id", vendor, func(ctx *gin.Context) {
			status, err := api.DeleteTicket(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(status)
		})
	return g
}

func adminTicketHandlers(g *gin.RouterGroup, api *controllers.API) *gin.RouterGroup {
	admin := middlewares.RequireRole(types.ROLE_ADMIN)
	g.
		PATCH("/tickets/:id/status", admin, func(ctx *gin.Context) {
			status, err := api.SetTicketStatus(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(status)
		}).
		PATCH("/tickets/advertise/:id", admin, func(ctx *gin.Context) {
			status, err := api.SetAdvertised(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(status)
		})
	return g
}
