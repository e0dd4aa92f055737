package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation verifica si un error es una violación de constraint único (23505).
// Exportado: el repositorio devuelve el error de almacenamiento sin traducir y
// la capa de servicio lo clasifica con estos predicados.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// IsIntegrityViolation verifica si un error pertenece a la clase 23
// (integrity constraint violation: FK inexistente, CHECK, NOT NULL, etc.).
func IsIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	return false
}
