package bootstrap

import (
	"context"
	"time"

	"parish-portal-be/internal/config"
	"parish-portal-be/internal/controller"
	"parish-portal-be/internal/pkg/logger"
	"parish-portal-be/internal/pkg/mailer"
	"parish-portal-be/internal/pkg/serverutils"
	"parish-portal-be/internal/pkg/throttle"
	"parish-portal-be/internal/repository/memory"
	"parish-portal-be/internal/repository/unitofwork"
	"parish-portal-be/internal/service"
	"parish-portal-be/pkg/events"
	pktNats "parish-portal-be/pkg/nats"
	"parish-portal-be/pkg/payment"
	"parish-portal-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	listingCacheTTL = time.Minute
	otpSendLimit    = 5
	otpSendWindow   = time.Hour
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	AuthController          controller.IAuthController
	UserController          controller.IUserController
	CertificateController   controller.ICertificateController
	MassBookingController   controller.IMassBookingController
	PaymentController       controller.IPaymentController
	AnnouncementController  controller.IAnnouncementController
	CalendarEventController controller.ICalendarEventController
	AdminController         controller.IAdminController

	// Background services, started by cmd/rest
	MailConsumer        service.IMailConsumerService
	AnnouncementJanitor service.IAnnouncementService
	// nil when NATS is unreachable
	AuditService *service.AuditService

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	c := &Container{Logger: sysLogger}

	// 2. Mail queue
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
		sysLogger,
	)
	mailDispatcher := mailer.NewDispatcher(pubSub, cfg.App.MailTopic, sysLogger)

	// 3. Infrastructure
	// NATS is optional: without it events are dropped and the audit trail is off.
	var publisher events.Publisher = events.NopPublisher{}
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "NATS publisher unavailable, domain events disabled", map[string]interface{}{"error": err.Error()})
	} else {
		publisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	if natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger); err != nil {
		sysLogger.Warn("BOOTSTRAP", "NATS subscriber unavailable, audit trail disabled", map[string]interface{}{"error": err.Error()})
	} else {
		c.AuditService = service.NewAuditService(natsSub, auditLogger, sysLogger)
		c.closers = append(c.closers, natsSub.Close)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using it as address", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		sysLogger.Warn("BOOTSTRAP", "Redis unreachable, OTP throttle open", map[string]interface{}{"error": err.Error()})
	}
	c.closers = append(c.closers, func() { _ = rdb.Close() })
	otpLimiter := throttle.NewRedisLimiter(rdb, "otp", otpSendLimit, otpSendWindow, sysLogger)

	gateway := payment.NewMidtransGateway(payment.MidtransConfig{
		ServerKey:    cfg.Payment.ServerKey,
		IsProduction: cfg.Payment.IsProduction,
		FinishURL:    cfg.App.ClientURL,
	})
	paymentSettings := service.PaymentSettings{
		Currency:    cfg.Payment.Currency,
		AmountMinor: cfg.Payment.AmountMinor,
	}
	fileStore := store.NewLocalFileStore(cfg.App.UploadDir)
	listingCache := memory.NewListingCache(listingCacheTTL)

	// 4. Services
	authService := service.NewAuthService(uowFactory, mailDispatcher, publisher, otpLimiter, service.AuthSettings{
		JwtSecret: cfg.Auth.JwtSecret,
		TokenTTL:  cfg.Auth.TokenTTL,
	}, sysLogger)
	certificateService := service.NewCertificateService(uowFactory, gateway, paymentSettings, fileStore, mailDispatcher, publisher, sysLogger)
	massBookingService := service.NewMassBookingService(uowFactory, gateway, paymentSettings, mailDispatcher, publisher, sysLogger)
	paymentService := service.NewPaymentService(uowFactory, cfg.Payment.ServerKey, mailDispatcher, publisher, sysLogger)
	announcementService := service.NewAnnouncementService(uowFactory, listingCache, sysLogger)
	calendarEventService := service.NewCalendarEventService(uowFactory, listingCache, sysLogger)
	adminService := service.NewAdminService(sysLogger, auditLogger)

	c.MailConsumer = service.NewMailConsumerService(pubSub, cfg.App.MailTopic, emailService, sysLogger)
	c.AnnouncementJanitor = announcementService

	// 5. Controllers
	auth := serverutils.JwtMiddleware(cfg.Auth.JwtSecret, authService)

	c.AuthController = controller.NewAuthController(authService, auth, controller.CookieSettings{
		Secure: cfg.Auth.CookieSecure,
		MaxAge: cfg.Auth.TokenTTL,
	})
	c.UserController = controller.NewUserController(authService, auth)
	c.CertificateController = controller.NewCertificateController(certificateService, auth)
	c.MassBookingController = controller.NewMassBookingController(massBookingService, auth)
	c.PaymentController = controller.NewPaymentController(paymentService, sysLogger)
	c.AnnouncementController = controller.NewAnnouncementController(announcementService, auth)
	c.CalendarEventController = controller.NewCalendarEventController(calendarEventService, auth)
	c.AdminController = controller.NewAdminController(adminService, auth)

	return c
}

// Close releases broker and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
