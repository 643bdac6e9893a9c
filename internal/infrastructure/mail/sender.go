// Package mail envía correo transaccional vía SMTP.
package mail

import (
	"gopkg.in/gomail.v2"

	"github.com/tu-usuario/admisiones-pro/internal/application/ports"
)

// Config parámetros SMTP del remitente.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender implementa ports.Mailer sobre gomail. Cada envío abre y cierra la
// conexión SMTP; el volumen transaccional de la API no justifica un pool.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

var _ ports.Mailer = (*Sender)(nil)

// NewSender construye el remitente SMTP.
func NewSender(cfg Config) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send envía un correo HTML a un destinatario.
func (s *Sender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}
