package component

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yanizio/folio/internal/config"
	"github.com/yanizio/folio/internal/form"
	"github.com/yanizio/folio/internal/message"
	"github.com/yanizio/folio/internal/view"
)

// Deps are the shared resources handed to every component's Init.
type Deps struct {
	DB     *sqlx.DB
	Config *config.Config
	View   *view.Renderer
	CSRF   *form.CSRF
	Log    *zap.SugaredLogger
	Outbox message.Outbox // nil disables notifications
}
