package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/dropDatabas3/janus/internal/observability/logger"
)

// Event registra un evento de auditoría sobre el canal de logs estructurado.
// Los cambios de identidad (altas de usuario, altas y asignación de roles)
// pasan por acá para poder filtrarlos por logger="audit" más adelante.
func Event(ctx context.Context, event string, fields ...zap.Field) {
	logger.From(ctx).Named("audit").Info(event, fields...)
}
