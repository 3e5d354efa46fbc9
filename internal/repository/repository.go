package repository

import "errors"

// ErrNotFound se devuelve cuando un registro no existe, sin importar el
// backend (Postgres o memoria). Los repos Pg traducen pgx.ErrNoRows a este
// sentinel para que los servicios no dependan del driver.
var ErrNotFound = errors.New("record not found")
