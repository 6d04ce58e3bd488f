package middlewares

import (
	"strconv"
	"time"
	"triphub/src/monitoring"

	"github.com/gin-gonic/gin"
)

func Metrics(ctx *gin.Context) {
	start := time.Now()
	ctx.Next()
	route := ctx.FullPath()
	if route == "" {
		route = "unmatched"
	}
	monitoring.HTTPRequestsTotal.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
	monitoring.HTTPRequestDuration.WithLabelValues(ctx.Request.Method, route).Observe(time.Since(start).Seconds())
}
