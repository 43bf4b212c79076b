package controllers

import (
	"context"

	"cloud.google.com/go/auth/credentials/idtoken"
	"go.uber.org/zap"

	"github.com/vnkhanh/wild-series-backend/repository"
	"github.com/vnkhanh/wild-series-backend/utils"
	"github.com/vnkhanh/wild-series-backend/ws"
)

// GoogleVerifier validates a Google ID token for audience.
type GoogleVerifier func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type Options struct {
	Catalog *repository.Catalog
	JWT     *utils.JWTService
	CSRF    *utils.CSRFManager
	Mailer  utils.Mailer
	// Posters may be nil; poster uploads are then ignored.
	Posters utils.PosterStore
	Hub     *ws.Hub
	Log     *zap.Logger

	BaseURL        string
	MailFrom       string
	MailTo         string
	GoogleClientID string
	VerifyGoogle   GoogleVerifier
}

// Controller holds the dependencies shared by every handler.
type Controller struct {
	catalog *repository.Catalog
	jwt     *utils.JWTService
	csrf    *utils.CSRFManager
	mailer  utils.Mailer
	posters utils.PosterStore
	hub     *ws.Hub
	log     *zap.Logger

	baseURL        string
	mailFrom       string
	mailTo         string
	googleClientID string
	verifyGoogle   GoogleVerifier
}

func New(opts Options) *Controller {
	c := &Controller{
		catalog:        opts.Catalog,
		jwt:            opts.JWT,
		csrf:           opts.CSRF,
		mailer:         opts.Mailer,
		posters:        opts.Posters,
		hub:            opts.Hub,
		log:            opts.Log,
		baseURL:        opts.BaseURL,
		mailFrom:       opts.MailFrom,
		mailTo:         opts.MailTo,
		googleClientID: opts.GoogleClientID,
		verifyGoogle:   opts.VerifyGoogle,
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.hub == nil {
		c.hub = ws.NewHub(c.log)
	}
	if c.verifyGoogle == nil {
		c.verifyGoogle = idtoken.Validate
	}
	return c
}
