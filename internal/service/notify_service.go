package service

import (
	"fmt"
	"log"
	"os"
	"strings"

	"barberia/internal/db"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type NotifyService struct{}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

// SendConfirmacionSMS texts the customer right after their turno is booked.
func (n *NotifyService) SendConfirmacionSMS(t db.Turno) error {
	body := fmt.Sprintf(
		"¡Turno confirmado! %s, te esperamos el %s a las %s (%s). Barbería.",
		t.Nombre, t.Fecha, t.Hora, t.Servicio,
	)
	return sendSMS(t.Telefono, body)
}

// SendRecordatorioSMS texts the customer the day before their turno.
func (n *NotifyService) SendRecordatorioSMS(t db.Turno) error {
	body := fmt.Sprintf(
		"Recordatorio: %s, mañana %s a las %s tenés tu turno de %s. Barbería.",
		t.Nombre, t.Fecha, t.Hora, t.Servicio,
	)
	return sendSMS(t.Telefono, body)
}

// SendAgendaEmail mails the day's turnos to the shop.
func (n *NotifyService) SendAgendaEmail(fecha string, turnos []db.Turno) error {
	sendgridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendgridAPIKey == "" {
		log.Println("ADVERTENCIA: SENDGRID_API_KEY no está configurada. La agenda no se enviará.")
		return fmt.Errorf("SENDGRID_API_KEY no está configurada")
	}
	toEmail := os.Getenv("BARBERIA_AGENDA_EMAIL")
	if toEmail == "" {
		log.Println("ADVERTENCIA: BARBERIA_AGENDA_EMAIL no está configurada. La agenda no se enviará.")
		return fmt.Errorf("BARBERIA_AGENDA_EMAIL no está configurada")
	}
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		log.Println("ADVERTENCIA: SENDGRID_FROM_EMAIL no está configurada. La agenda no se enviará.")
		return fmt.Errorf("SENDGRID_FROM_EMAIL no está configurada")
	}
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Barbería"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Agenda del %s (%d turnos)\n\n", fecha, len(turnos))
	if len(turnos) == 0 {
		b.WriteString("No hay turnos reservados para hoy.\n")
	}
	for _, t := range turnos {
		fmt.Fprintf(&b, "%s  %s  (%s)  tel: %s\n", t.Hora, t.Nombre, t.Servicio, t.Telefono)
	}

	subject := fmt.Sprintf("Agenda de turnos — %s", fecha)
	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail("Barbería", toEmail)
	message := mail.NewSingleEmail(from, subject, to, b.String(), "")

	client := sendgrid.NewSendClient(sendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error al enviar la agenda vía SendGrid: %v", err)
		return fmt.Errorf("falló el envío de la agenda a través de SendGrid: %w", err)
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("Agenda del %s enviada a %s. Estado: %d", fecha, toEmail, response.StatusCode)
		return nil
	}
	log.Printf("Error al enviar la agenda. Estado: %d, Cuerpo: %s", response.StatusCode, response.Body)
	return fmt.Errorf("SendGrid devolvió un estado no exitoso %d: %s", response.StatusCode, response.Body)
}

func sendSMS(toNumber, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")

	if accountSid == "" || authToken == "" || fromNumber == "" {
		log.Println("ADVERTENCIA: Las credenciales de Twilio no están configuradas. El SMS no se enviará.")
		return fmt.Errorf("credenciales de Twilio no configuradas completamente")
	}

	if !strings.HasPrefix(toNumber, "+") {
		prefix := os.Getenv("TWILIO_COUNTRY_PREFIX")
		if prefix == "" {
			prefix = "+54" // los clientes cargan el teléfono sin prefijo
		}
		toNumber = prefix + toNumber
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Error al enviar SMS a %s vía Twilio: %v", toNumber, err)
		return fmt.Errorf("falló el envío del SMS: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("SMS enviado exitosamente a %s. SID del Mensaje: %s", toNumber, *resp.Sid)
	}
	return nil
}
