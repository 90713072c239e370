package handler

import (
	"context"
	"net/http"
	"time"

	"catalogo/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// tabelasCatalogo are the tables the pages cannot work without.
var tabelasCatalogo = []interface{}{
	&model.Produto{},
	&model.CampoPersonalizado{},
	&model.ValorPersonalizado{},
	&model.ProdutoCampoValor{},
}

// Health GET /health
//
// Answers 200 when the database answers a ping and every catalog table is
// present, 503 otherwise.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		banco, schema := "connected", "ok"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			banco, schema = "error", "unknown"
		} else {
			m := db.WithContext(ctx).Migrator()
			for _, t := range tabelasCatalogo {
				if !m.HasTable(t) {
					schema = "missing"
					break
				}
			}
		}

		ok := banco == "connected" && schema == "ok"
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"ok": ok, "db": banco, "schema": schema})
	}
}
