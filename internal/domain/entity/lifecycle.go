package entity

// Lifecycle estado de vida de un registro del catálogo. Reemplaza el flag booleano
// "activo": los listados y búsquedas trabajan sobre Active salvo que el caller pida
// explícitamente incluir retirados.
type Lifecycle string

const (
	LifecycleActive  Lifecycle = "active"
	LifecycleRetired Lifecycle = "retired"
)

// Valid reporta si el valor es uno de los estados conocidos.
func (l Lifecycle) Valid() bool {
	return l == LifecycleActive || l == LifecycleRetired
}
