// Package views содержит состояние экранов списка и формы для контрагентов и лотов.
// Экземпляр живёт столько же, сколько экран (в веб-интерфейсе один запрос),
// и общается с бэкендом только через REST-клиент.
package views

import "net/url"

const (
	MsgLoadFailed   = "Ошибка загрузки данных"
	MsgSaveFailed   = "Ошибка сохранения"
	MsgDeleteFailed = "Ошибка удаления"

	PathCustomers = "/customers"
	PathLots      = "/lots"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
)

func (s Status) String() string {
	if s == StatusLoading {
		return "loading"
	}
	return "idle"
}

// Notice: сообщение пользователю.
type Notice struct {
	Text  string
	Error bool
}

func info(text string) *Notice { return &Notice{Text: text} }
func alert(text string) *Notice { return &Notice{Text: text, Error: true} }

// Effect: что экран должен сделать после действия: показать сообщение
// и/или перейти по адресу. Пустой Effect: остаться на месте.
type Effect struct {
	Notice   *Notice
	Redirect string
}

type machine struct {
	status Status
}

func (m *machine) begin() { m.status = StatusLoading }
func (m *machine) finish() { m.status = StatusIdle }
func (m *machine) Status() Status { return m.status }
func (m *machine) Loading() bool { return m.status == StatusLoading }

// withQuery дописывает к пути непустые параметры.
func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
