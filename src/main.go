package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"
	"strconv"
	"triphub/src/boot"
	"triphub/src/common"
	"triphub/src/config"
	"triphub/src/controllers"
	"triphub/src/inventory"
	"triphub/src/lib"
	"triphub/src/middlewares"
	"triphub/src/moderation"
	"triphub/src/settlement"
	"triphub/src/store"
	"triphub/src/types"
	"triphub/src/utils"

	awslib "triphub/src/lib/aws"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	apiPrefix string = "/api/v1"
)

type app struct {
	api      *controllers.API
	verifier middlewares.Verifier
	roles    middlewares.RoleResolver
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.RequestID, middlewares.SecureHeaders, middlewares.Metrics)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		on, _ := strconv.ParseBool(os.Getenv("MAINTENANCE_MODE"))
		if on {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func publicRoutes(g *gin.Engine, a *app) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	publicTicketHandlers(apiv1, a.api)
	stripeWebhookRoute(apiv1, a.api)
	return apiv1
}

func authorizedRoutes(g *gin.Engine, a *app) *gin.RouterGroup {
	authorized := g.Group(apiPrefix)
	authorized.Use(middlewares.Authenticate(a.verifier, a.roles))
	userHandlers(authorized, a.api)
	bookingHandlers(authorized, a.api)
	paymentHandlers(authorized, a.api)
	vendorHandlers(authorized, a.api)
	vendorTicketHandlers(authorized, a.api)
	vendorBookingHandlers(authorized, a.api)
	vendorPaymentHandlers(authorized, a.api)
	adminTicketHandlers(authorized, a.api)
	adminPaymentHandlers(authorized, a.api)
	return authorized
}

func registerRoutes(router *gin.Engine, a *app) *gin.Engine {
	router = maintenanceModeMiddleware(router)
	publicRoutes(router, a)
	authorizedRoutes(router, a)
	return router
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("futuredate", utils.FutureDate)
	}
}

func corsMiddleware(apiEnv string) gin.HandlerFunc {
	if apiEnv == string(types.Local) {
		return cors.Default()
	}
	appHost := config.AppHost()
	cc := cors.DefaultConfig()
	cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
	cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
	cc.AllowOriginFunc = func(origin string) bool {
		match, _ := regexp.MatchString(appHost, origin)
		return match
	}
	cc.AllowCredentials = true
	cc.AllowAllOrigins = false
	return cors.New(cc)
}

func verifierFor(env types.Environment) middlewares.Verifier {
	if env == types.Local || env == types.Test {
		return lib.JWTVerifier{Secret: []byte(os.Getenv("JWT_SECRET"))}
	}
	return lib.FirebaseVerifier{}
}

func newApp(env types.Environment, st *store.Store) (*app, *settlement.Coordinator) {
	roles := lib.NewRoleCache(lib.GetRedisClient(), st, config.RoleCacheTTL())
	gateway := lib.NewStripeGateway(lib.GetStripeClient())
	coordinator := settlement.NewCoordinator(
		gateway,
		st,
		inventory.NewLedger(st),
		common.SettlementNotifier{Env: env},
	)
	api := &controllers.API{
		Store:      st,
		Settler:    coordinator,
		Checkout:   gateway,
		Approver:   moderation.NewApprover(controllers.StoreTx(st), roles),
		Cascade:    moderation.NewCascade(st, roles, awslib.NewSNSPublisher(awslib.VendorFlaggedTopic)),
		Advertiser: moderation.NewAdvertiser(st),
		Uploader:   awslib.S3PresignImageUpload,
		Currency:   config.Currency(),
		AppHost:    config.AppHost(),
		QRKey:      []byte(os.Getenv("QR_SECRET")),
		TempDir:    path.Join(os.TempDir(), "triphub"),
	}
	return &app{api: api, verifier: verifierFor(env), roles: roles}, coordinator
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	if err := os.MkdirAll(path.Dir(apiLogs), 0o755); err != nil {
		log.Printf("Could not create logs directory: %s\n", err.Error())
	}
	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := config.APIEnv()
	if apiEnv == string(types.Local) {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	ctx := context.Background()
	if apiEnv == string(types.Production) {
		if err := config.LoadSecrets(ctx); err != nil {
			log.Fatalf("Failed to load secrets: %s", err)
		}
		boot.DownloadFirebaseCredentials(ctx)
	}
	initLogger()
	env := types.Environment(apiEnv)

	st := store.New(boot.InitDb())
	a, coordinator := newApp(env, st)

	boot.InitScheduler(coordinator, st)
	defer boot.StopScheduler()
	boot.InitBroker(ctx, env)

	registerValidators()
	router := setupRouter()
	router.Use(corsMiddleware(apiEnv))
	registerRoutes(router, a)

	if err := router.Run(":" + config.Port()); err != nil {
		log.Fatalf("Failed to start server: %s", err)
	}
}
