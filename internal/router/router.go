package router

import (
	"fmt"
	"net/http"
	"time"

	"catalogo/internal/config"
	"catalogo/internal/handler"
	"catalogo/internal/middleware"
	"catalogo/internal/nomecomercial"
	"catalogo/internal/repository"
	"catalogo/internal/service"
	"catalogo/internal/web"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const sessionName = "catalogo"

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	gerador, err := nomecomercial.PorModo(cfg.NomeComercialModo)
	if err != nil {
		return nil, err
	}
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.ErrorHandler())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	// ── Repositories ─────────────────────────────────────────────────────────
	produtoRepo := repository.NewProdutoRepository(db)
	campoRepo := repository.NewCampoRepository(db)
	atribuicaoRepo := repository.NewAtribuicaoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	campoSvc := service.NewCampoService(campoRepo)
	atribuicaoSvc := service.NewAtribuicaoService(atribuicaoRepo, produtoRepo, campoRepo)
	produtoSvc := service.NewProdutoService(produtoRepo, campoRepo, atribuicaoRepo, gerador)
	importacaoSvc := service.NewImportacaoService(produtoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	camposH := handler.NewCamposHandler(campoSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc, atribuicaoSvc)
	importacaoH := handler.NewImportacaoHandler(importacaoSvc, cfg.UploadDir)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db))
	r.StaticFS("/static", http.FS(web.Static()))

	r.GET("/", handler.Index)

	r.GET("/custom_fields", camposH.Listar)
	r.POST("/custom_fields", camposH.Criar)
	r.GET("/custom_fields/:id/values", camposH.Valores)
	r.POST("/custom_fields/:id/values", camposH.AdicionarValor)
	r.GET("/editar_campo/:id", camposH.EditarForm)
	r.POST("/editar_campo/:id", camposH.Editar)
	r.GET("/editar_valor/:id", camposH.EditarValorForm)
	r.POST("/editar_valor/:id", camposH.EditarValor)
	r.POST("/excluir_campo/:id", camposH.Excluir)

	r.GET("/produtos", produtosH.Catalogo)
	r.GET("/produtos/pdf", produtosH.ExportarPDF)
	r.POST("/atualizar_valor", produtosH.AtualizarValor)
	r.POST("/salvar_todos", produtosH.SalvarTodos)
	r.POST("/salvar_tabela_produtos", produtosH.SalvarTabela)
	r.POST("/atualizar_nome_comercial", produtosH.AtualizarNomeComercial)

	importar := []gin.HandlerFunc{importacaoH.ImportarXML}
	if cfg.ImportRateLimit > 0 {
		importar = append([]gin.HandlerFunc{middleware.RateLimiter(cfg.ImportRateLimit, time.Minute)}, importar...)
	}
	r.POST("/importar_xml", importar...)

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, nil
}
