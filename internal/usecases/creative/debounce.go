package creative

import (
	"sync"
	"time"
)

// Debouncer agenda uma tarefa atrasada cancelável. Cada novo Trigger cancela
// qualquer tarefa pendente antes de agendar a próxima: nunca há fila.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

// Trigger cancela a tarefa pendente, se houver, e agenda fn para depois do
// intervalo informado.
func (d *Debouncer) Trigger(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(delay, fn)
}

// Stop cancela a tarefa pendente sem agendar outra.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
