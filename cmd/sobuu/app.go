package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/AyoPrez/sobuu-sub000/internal/infra/logging"
	"github.com/AyoPrez/sobuu-sub000/internal/infra/metrics"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
	"github.com/AyoPrez/sobuu-sub000/internal/repo/credential"
	"github.com/AyoPrez/sobuu-sub000/internal/session"
	"github.com/AyoPrez/sobuu-sub000/internal/svc/authsvc"
	"github.com/AyoPrez/sobuu-sub000/internal/svc/booksvc"
	"github.com/AyoPrez/sobuu-sub000/internal/svc/commentsvc"
	"github.com/AyoPrez/sobuu-sub000/internal/svc/profilesvc"
	"github.com/AyoPrez/sobuu-sub000/internal/svc/shelfsvc"
)

// app wires the repositories of all features around one session.
type app struct {
	cfg      Config
	out      io.Writer
	log      logging.Logger
	store    credential.Store
	registry *prometheus.Registry

	session  *session.Session
	auth     *authsvc.Repository
	books    *booksvc.Repository
	comments *commentsvc.Repository
	profiles *profilesvc.Repository
	shelves  *shelfsvc.Repository
}

func newApp(ctx context.Context, cfg Config, out io.Writer) (*app, error) {
	log := logging.GetLogger("cmd.sobuu.app")

	storeFactory, err := credential.NewStoreFactory(cfg.Credential)
	if err != nil {
		return nil, fmt.Errorf("new store factory: %w", err)
	}

	store, err := storeFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("new credential store: %w", err)
	}

	client, err := http_.NewClient(cfg.Parse, nil)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("new client: %w", err), store.Close())
	}

	registry := prometheus.NewRegistry()
	opts := []remote.Option{
		remote.WithMetrics(metrics.NewMetrics(cfg.Metrics.Namespace, registry)),
	}

	sess := session.New(ctx, store, func(ctx context.Context, from, to session.State) {
		log.InfoContext(ctx, "session changed", "from", from.String(), "to", to.String())
	})

	return &app{
		cfg:      cfg,
		out:      out,
		log:      log,
		store:    store,
		registry: registry,
		session:  sess,
		auth:     authsvc.NewRepository(sess, client, opts...),
		books:    booksvc.NewRepository(sess, client, opts...),
		comments: commentsvc.NewRepository(sess, client, opts...),
		profiles: profilesvc.NewRepository(sess, client, opts...),
		shelves:  shelfsvc.NewRepository(sess, client, opts...),
	}, nil
}

// Close pushes metrics when configured and closes the credential store.
func (a *app) Close(ctx context.Context) error {
	var pushErr error

	if a.cfg.Metrics.PushURL != "" {
		pushErr = push.New(a.cfg.Metrics.PushURL, appName).
			Gatherer(a.registry).
			PushContext(ctx)
		if pushErr != nil {
			pushErr = fmt.Errorf("push metrics: %w", pushErr)
		}
	}

	if families, err := a.registry.Gather(); err == nil {
		a.log.DebugContext(ctx, "metrics gathered", "families", len(families))
	}

	return errors.Join(pushErr, a.store.Close())
}

// render writes the payload of a successful outcome as JSON, or returns its error tag.
func render[T any, E remote.Kind](w io.Writer, out remote.Outcome[T, E]) error {
	data, err := out.Result()
	if err != nil {
		return err
	}

	return writeJSON(w, data)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	return nil
}
