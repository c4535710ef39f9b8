package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/medisched/booking-slots-engine/internal/config"
	"github.com/medisched/booking-slots-engine/internal/core/domain"
	"github.com/medisched/booking-slots-engine/internal/core/ports/out"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentStoreAdapter struct {
	collection *mongo.Collection
	logger     out.LoggerPort
}

func NewAppointmentStoreAdapter(client *mongo.Client, cfg *config.Config, logger out.LoggerPort) *AppointmentStoreAdapter {
	return &AppointmentStoreAdapter{
		collection: client.Database(cfg.Mongo.Database).Collection(collectionAppointments),
		logger:     logger.WithModule("AppointmentStoreAdapter"),
	}
}

func (a *AppointmentStoreAdapter) GetAppointment(ctx context.Context, appointmentID string) (*domain.AppointmentRecord, error) {
	var appointment domain.AppointmentRecord
	err := a.collection.FindOne(ctx, bson.M{"_id": appointmentID}).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, domain.NewCollaboratorError("appointment.get", err)
	}
	return &appointment, nil
}

func (a *AppointmentStoreAdapter) ListByDoctorDate(ctx context.Context, doctorID, date string) ([]domain.AppointmentRecord, error) {
	filter := bson.M{"doctorId": doctorID, "date": date}
	return a.list(ctx, filter)
}

func (a *AppointmentStoreAdapter) ListByPatient(ctx context.Context, patientID string) ([]domain.AppointmentRecord, error) {
	return a.list(ctx, bson.M{"patientId": patientID})
}

func (a *AppointmentStoreAdapter) ListActiveForDates(ctx context.Context, dates []string) ([]domain.AppointmentRecord, error) {
	filter := bson.M{
		"date": bson.M{"$in": dates},
		"status": bson.M{"$in": []domain.AppointmentStatus{
			domain.AppointmentStatusPending,
			domain.AppointmentStatusConfirmed,
		}},
	}
	return a.list(ctx, filter)
}

func (a *AppointmentStoreAdapter) list(ctx context.Context, filter bson.M) ([]domain.AppointmentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := a.collection.Find(ctx, filter, opts)
	if err != nil {
		a.logger.Error("mongo.appointments.fetch_failed", out.LogFields{
			"filter": filter,
			"error":  err.Error(),
		})
		return nil, domain.NewCollaboratorError("appointment.list", err)
	}
	defer cursor.Close(ctx)

	appointments := make([]domain.AppointmentRecord, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, domain.NewCollaboratorError("appointment.list.decode", err)
	}
	return appointments, nil
}

func (a *AppointmentStoreAdapter) CreateAppointment(ctx context.Context, appointment *domain.AppointmentRecord) error {
	_, err := a.collection.InsertOne(ctx, appointment)
	if err != nil {
		a.logger.Error("mongo.appointment.insert_failed", out.LogFields{
			"appointmentId": appointment.ID,
			"error":         err.Error(),
		})
		return domain.NewCollaboratorError("appointment.create", err)
	}
	return nil
}

// UpdateAppointment - частичный $set, атомарный на уровне документа.
// На этой атомарности держится гарантия отсутствия двойного бронирования.
func (a *AppointmentStoreAdapter) UpdateAppointment(ctx context.Context, appointmentID string, patch domain.AppointmentPatch) error {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.Time != nil {
		set["time"] = *patch.Time
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.PaymentStatus != nil {
		set["paymentStatus"] = *patch.PaymentStatus
	}
	if patch.CancelReason != nil {
		set["cancelReason"] = *patch.CancelReason
	}
	if patch.Reminders != nil {
		set["reminders"] = *patch.Reminders
	}

	result, err := a.collection.UpdateOne(ctx, bson.M{"_id": appointmentID}, bson.M{"$set": set})
	if err != nil {
		a.logger.Error("mongo.appointment.update_failed", out.LogFields{
			"appointmentId": appointmentID,
			"error":         err.Error(),
		})
		return domain.NewCollaboratorError("appointment.update", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}
