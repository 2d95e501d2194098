package service

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"asistenciapp_backend/internals/features/notifications/model"
)

// Dispatcher es la cola de salida del fan-out de notificaciones: las
// operaciones que disparan avisos encolan y siguen; un worker aparte hace la
// escritura. Un fallo aquí se loguea y nunca llega a la operación origen.
type Dispatcher struct {
	db    *gorm.DB
	queue chan func(db *gorm.DB) error

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

func NewDispatcher(db *gorm.DB) *Dispatcher {
	return &Dispatcher{
		db:    db,
		queue: make(chan func(db *gorm.DB) error, 256),
		done:  make(chan struct{}),
	}
}

// Start arranca el worker (una sola vez)
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		go func() {
			defer close(d.done)
			for job := range d.queue {
				if err := job(d.db); err != nil {
					log.Printf("[ERROR] notificación fallida: %v", err)
				}
			}
		}()
	})
}

// Stop cierra la cola y espera a que el worker drene lo pendiente
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		<-d.done
	})
}

// enqueue nunca bloquea: si la cola está llena, se descarta y se loguea
func (d *Dispatcher) enqueue(job func(db *gorm.DB) error) {
	select {
	case d.queue <- job:
	default:
		log.Println("[WARNING] cola de notificaciones llena, aviso descartado")
	}
}

// UserCreated avisa a los administradores de un registro nuevo
func (d *Dispatcher) UserCreated(userName string, userID uuid.UUID) {
	d.enqueue(func(db *gorm.DB) error {
		_, err := NotifyAdmins(db, CreateParams{
			Title:         "👤 Nuevo Usuario Registrado",
			Message:       fmt.Sprintf("%s se ha registrado en el sistema.", userName),
			Type:          model.TypeUserCreated,
			RelatedUser:   &userID,
			ExpiresInDays: 30,
		})
		return err
	})
}

// AttendanceRegistered avisa a los administradores de una asistencia nueva
func (d *Dispatcher) AttendanceRegistered(userID, eventID uuid.UUID, eventName string, verified bool) {
	d.enqueue(func(db *gorm.DB) error {
		verifiedText := ""
		if verified {
			verifiedText = " con verificación facial"
		}
		_, err := NotifyAdmins(db, CreateParams{
			Title:         "✓ Nueva Asistencia Registrada",
			Message:       fmt.Sprintf("Un usuario ha registrado su asistencia al evento %q%s.", eventName, verifiedText),
			Type:          model.TypeAttendanceRegistered,
			RelatedEvent:  &eventID,
			RelatedUser:   &userID,
			ExpiresInDays: 30,
		})
		return err
	})
}

// DocumentUploaded avisa a todos menos a quien subió el documento
func (d *Dispatcher) DocumentUploaded(title string, documentID, uploadedBy uuid.UUID) {
	d.enqueue(func(db *gorm.DB) error {
		_, err := NotifyAllUsers(db, CreateParams{
			Title:           "📄 Nuevo Documento Disponible",
			Message:         fmt.Sprintf("Se ha subido un nuevo documento: %q. ¡Revísalo ahora!", title),
			Type:            model.TypeDocumentUploaded,
			RelatedDocument: &documentID,
			ExpiresInDays:   30,
		}, &uploadedBy)
		return err
	})
}
