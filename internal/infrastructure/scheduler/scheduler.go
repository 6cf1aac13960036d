// Package scheduler programa la ejecución periódica del barrido de reposición.
package scheduler

import (
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Compras-api/pkg/logger"
)

// Scheduler handle del planificador cron. Start y Stop son idempotentes:
// llamadas repetidas no registran trabajos duplicados ni generan pánico.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	running bool
	log     *logger.Logger
}

// New construye el planificador sin trabajos registrados.
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log,
	}
}

// AddJob registra una función bajo una expresión cron estándar de 5 campos
// (ej. "0 6 * * *"). Devuelve error si la expresión es inválida.
func (s *Scheduler) AddJob(name, spec string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.cron.AddFunc(spec, func() {
		s.log.Debug().Str("job", name).Msg("ejecutando trabajo programado")
		job()
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("job", name).Str("schedule", spec).Msg("trabajo programado registrado")
	return nil
}

// Start arranca el planificador. Ignorado si ya está corriendo.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	s.log.Info().Msg("planificador iniciado")
}

// Stop detiene el planificador y espera a que terminen los trabajos en curso.
// Ignorado si no está corriendo.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.log.Info().Msg("planificador detenido")
}

// Running informa si el planificador está activo.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
