package publishingservice

import (
	"log/slog"

	"plume/contexts/content-sharing/publishing-service/adapters/hash"
	httpadapter "plume/contexts/content-sharing/publishing-service/adapters/http"
	"plume/contexts/content-sharing/publishing-service/adapters/memory"
	"plume/contexts/content-sharing/publishing-service/adapters/token"
	"plume/contexts/content-sharing/publishing-service/application"
	"plume/contexts/content-sharing/publishing-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Guard   application.Guard
	Tokens  ports.TokenSource
	Bus     ports.EventBus
	Store   *memory.Store
}

type Dependencies struct {
	Users    ports.UserRepository
	Posts    ports.PostRepository
	Comments ports.CommentRepository
	Bus      ports.EventBus
	Hasher   ports.PasswordHasher
	Tokens   ports.TokenSource
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Users:    deps.Users,
		Posts:    deps.Posts,
		Comments: deps.Comments,
		Bus:      deps.Bus,
		Hasher:   deps.Hasher,
		Tokens:   deps.Tokens,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
		Guard:   application.Guard{Tokens: deps.Tokens},
		Tokens:  deps.Tokens,
		Bus:     deps.Bus,
	}
}

// NewInMemoryModule wires the service entirely against the in-memory store,
// with a fixed dev token secret and the cheapest hash cost. Test and local
// wiring only.
func NewInMemoryModule(bus ports.EventBus, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Users:    store,
		Posts:    store,
		Comments: store,
		Bus:      bus,
		Hasher:   hash.Bcrypt{Cost: hash.MinCost},
		Tokens:   token.NewJWT([]byte("plume-dev-secret"), 0),
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
