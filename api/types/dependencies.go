package types

import (
	"github.com/lx-annotate/annotate-api/internal/backend"
	"github.com/lx-annotate/annotate-api/internal/services/annotations"
	"github.com/lx-annotate/annotate-api/internal/services/drafts"
	"github.com/lx-annotate/annotate-api/internal/services/segments"
	"github.com/lx-annotate/annotate-api/internal/services/sensitivemeta"
	"github.com/lx-annotate/annotate-api/internal/services/stats"
	"github.com/lx-annotate/annotate-api/internal/storage"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	Storage           storage.Store
	Backend           *backend.Client
	DraftService      drafts.Service
	SegmentService    segments.Service
	AnnotationService annotations.Service
	StatsService      stats.Service
	SensitiveMeta     sensitivemeta.Service
}
