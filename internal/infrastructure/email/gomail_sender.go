// Package email envía órdenes de compra a proveedores por SMTP.
package email

import (
	"bytes"
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"
)

// SMTPConfig parámetros de conexión al servidor de correo.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// GomailSender implementa el puerto OrderMailer usando gomail sobre SMTP.
type GomailSender struct {
	cfg SMTPConfig
}

// NewGomailSender construye el emisor de correo.
func NewGomailSender(cfg SMTPConfig) *GomailSender {
	return &GomailSender{cfg: cfg}
}

// SendOrder envía el correo al proveedor con el PDF de la orden adjunto.
// Un error aquí no debe cambiar el estado de la orden: el caso de uso
// reintenta el envío completo en la próxima invocación.
func (s *GomailSender) SendOrder(_ context.Context, to, subject, body string, attachment []byte, filename string) error {
	if to == "" {
		return fmt.Errorf("proveedor sin email de contacto")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	if len(attachment) > 0 {
		msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(attachment))
			return err
		}))
	}

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo a %s: %w", to, err)
	}
	return nil
}
