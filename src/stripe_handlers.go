package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"triphub/src/controllers"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

func stripeWebhookRoute(g *gin.RouterGroup, api *controllers.API) *gin.RouterGroup {
	g.POST("/webhook/stripe", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		whsecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), whsecret)
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			ctx.Status(http.StatusBadRequest)
			return
		}
		log.Printf("[StripeEvent] %s\n", event.Type)
		switch event.Type {
		case "checkout.session.completed":
			var cs stripe.CheckoutSession
			if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
				log.Printf("[Stripe] Error parsing CheckoutSession: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			log.Printf("[CheckoutSession] ID: %s %s\n", cs.ID, cs.PaymentStatus)
			result, err := api.Settler.Settle(ctx.Request.Context(), cs.ID)
			if err != nil {
				// non-2xx makes stripe deliver the event again
				log.Printf("[Settlement] session %s: %s\n", cs.ID, err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			log.Printf("[Settlement] session %s: %s\n", cs.ID, result.Outcome)
		default:
			log.Printf("[Stripe] Unhandled event type: %s\n", event.Type)
		}
		ctx.Status(http.StatusOK)
	})
	return g
}
