package app

import (
	"github.com/go-chi/oauth"

	"github.com/crodriguezm/sgsst/classify"
	"github.com/crodriguezm/sgsst/config"
	"github.com/crodriguezm/sgsst/store"
)

// App bundles the long-lived collaborators the route handlers share.
// Classifier is nil when no API key was configured.
type App struct {
	*oauth.BearerServer
	config.Config
	Store      *store.Store
	Classifier *classify.Service
}
