package core

import (
	"net/http"

	"github.com/joeydtaylor/minoss/pkg/dispatch"
	"github.com/joeydtaylor/minoss/pkg/messages"
	"github.com/joeydtaylor/minoss/pkg/middleware/logger"
	httpx "github.com/joeydtaylor/minoss/pkg/transport/httpx"
)

type BuildDeps struct {
	LogMW      *logger.Middleware
	Metrics    http.Handler
	Router     httpx.Router
	Dispatcher *dispatch.Dispatcher
	Catalog    *messages.Catalog
}
