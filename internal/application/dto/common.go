package dto

// ErrorResponse cuerpo de error HTTP. Details lleva los errores de validación por campo;
// OrderID el pedido ya creado cuando se reenvía una Idempotency-Key.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	OrderID string            `json:"order_id,omitempty"`
}

// OperationResponse resultado de una mutación: {success, message} y datos opcionales.
type OperationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK construye una respuesta exitosa.
func OK(message string, data any) OperationResponse {
	return OperationResponse{Success: true, Message: message, Data: data}
}

// CountResponse cantidad de filas afectadas por un borrado o una carga.
type CountResponse struct {
	Count int64 `json:"count"`
}
