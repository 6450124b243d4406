package ports

import "context"

// IdempotencyPending valor guardado mientras la operación protegida sigue en curso.
const IdempotencyPending = "pending"

// IdempotencyGuard protege la creación de pedidos frente a reenvíos con la misma clave.
// scope suele ser el usuario y key la cabecera Idempotency-Key.
type IdempotencyGuard interface {
	// Reserve intenta tomar la clave. Si ya existía devuelve (valorGuardado, false, nil):
	// IdempotencyPending o el id del pedido ya creado.
	Reserve(ctx context.Context, scope, key string) (string, bool, error)
	// Complete guarda el id del pedido creado para responder a reenvíos.
	Complete(ctx context.Context, scope, key, orderID string) error
	// Release libera la clave cuando la operación falló y puede reintentarse.
	Release(ctx context.Context, scope, key string) error
}
