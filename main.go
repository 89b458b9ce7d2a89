// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/platefeed/server/internal/callable"
	"github.com/platefeed/server/internal/config"
	"github.com/platefeed/server/internal/handler/categories"
	"github.com/platefeed/server/internal/handler/deleterecipe"
	"github.com/platefeed/server/internal/handler/favorites"
	"github.com/platefeed/server/internal/handler/follow"
	"github.com/platefeed/server/internal/handler/getpublished"
	"github.com/platefeed/server/internal/handler/listpublished"
	"github.com/platefeed/server/internal/handler/profile"
	"github.com/platefeed/server/internal/handler/publishrecipe"
	"github.com/platefeed/server/internal/handler/reaction"
	"github.com/platefeed/server/internal/handler/recipeproxy"
	"github.com/platefeed/server/internal/handler/reportrecipe"
	"github.com/platefeed/server/internal/images"
	"github.com/platefeed/server/internal/spoonacular"
)

//go:embed conf/*.yaml
var confFiles embed.FS

// publicPaths are served without authentication: liveness probes and the
// recipe API proxy. Everything else requires a verified Firebase token.
var publicPaths = map[string]bool{
	"/health":        true,
	"/ping":          true,
	"/recipesRandom": true,
	"/recipesSearch": true,
	"/recipesInfo":   true,
}

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	storage, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()
	publicBucket := conf.Google.Project + "-public"
	uploader := images.NewUploader(storage, publicBucket)

	var spoonOpts []spoonacular.Option
	if conf.Redis.Address != "" {
		cache := redis.NewClient(&redis.Options{Addr: conf.Redis.Address})
		defer func() {
			if err := cache.Close(); err != nil {
				slog.ErrorContext(ctx, "main: close redis client", "error", err)
			}
		}()
		spoonOpts = append(spoonOpts, spoonacular.WithCache(cache))
	}
	recipes := spoonacular.NewClient(conf.Spoonacular.BaseURL, conf.Spoonacular.APIKey, spoonOpts...)

	fbMW := firebaseauth.NewMiddleware(fbAuth)
	mux.Use(middleware.Maybe(fbMW, func(r *http.Request) bool {
		switch {
		case publicPaths[r.URL.Path]:
			return false
		case strings.HasPrefix(r.URL.Path, "/internal/"):
			return false
		default:
			return true
		}
	}))

	mux.Get("/health", liveness)
	mux.Get("/ping", liveness)

	proxy := recipeproxy.NewHandler(recipes)
	mux.HandleFunc("/recipesRandom", proxy.Random)
	mux.HandleFunc("/recipesSearch", proxy.Search)
	mux.HandleFunc("/recipesInfo", proxy.Info)

	reactions := reaction.NewHandler(firestore)
	callable.Handle(mux, "publishRecipe", publishrecipe.NewHandler(firestore, uploader).PublishRecipe)
	callable.Handle(mux, "deletePublishedRecipe", deleterecipe.NewHandler(firestore).DeleteRecipe)
	callable.Handle(mux, "setPublishedRecipeLike", reactions.SetLike)
	callable.Handle(mux, "setPublishedRecipeSave", reactions.SetSave)
	callable.Handle(mux, "incrementPublishedRecipeShare", reactions.IncrementShare)
	callable.Handle(mux, "getPublishedRecipe", getpublished.NewHandler(firestore).GetRecipe)
	callable.Handle(mux, "listPublishedRecipes", listpublished.NewHandler(firestore).ListRecipes)
	callable.Handle(mux, "reportRecipe", reportrecipe.NewHandler(firestore).ReportRecipe)

	favs := favorites.NewHandler(firestore)
	callable.Handle(mux, "toggleFavorite", favs.TogglePublished)
	callable.Handle(mux, "saveFavorite", favs.Save)
	callable.Handle(mux, "removeFavorite", favs.Remove)
	callable.Handle(mux, "setFavoriteCategory", favs.SetCategory)
	callable.Handle(mux, "listFavorites", favs.List)

	cats := categories.NewHandler(firestore)
	callable.Handle(mux, "addCategory", cats.Add)
	callable.Handle(mux, "renameCategory", cats.Rename)
	callable.Handle(mux, "deleteCategory", cats.Delete)
	callable.Handle(mux, "listCategories", cats.List)

	callable.Handle(mux, "setFollow", follow.NewHandler(firestore).SetFollow)

	profiles := profile.NewHandler(firestore, uploader)
	callable.Handle(mux, "createProfile", profiles.CreateProfile)
	callable.Handle(mux, "getProfile", profiles.GetProfile)
	callable.Handle(mux, "updateProfile", profiles.UpdateProfile)
	callable.Handle(mux, "deleteAccount", profiles.DeleteAccount)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}

func liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"success":true,"status":"ok"}`))
}
