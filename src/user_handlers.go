package main

import (
	"log"
	"net/http"
	"triphub/src/controllers"
	"triphub/src/middlewares"
	"triphub/src/types"

	"github.com/gin-gonic/gin"
)

func userHandlers(g *gin.RouterGroup, api *controllers.API) *gin.RouterGroup {
	g.
		POST("/users", func(ctx *gin.Context) {
			user, status, err := api.RegisterUser(ctx)
			if err != nil {
				log.Printf("[RegisterUser] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": user})
		}).
		GET("/users/role", func(ctx *gin.Context) {
			role, status, _ := api.UserRole(ctx)
			ctx.JSON(status, gin.H{"role": role})
		})
	g.GET("/users", middlewares.RequireRole(types.ROLE_ADMIN), func(ctx *gin.Context) {
		users, status, err := api.ListUsers(ctx)
		if err != nil {
			ctx.JSON(status, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"data": users})
	})
	return g
}
