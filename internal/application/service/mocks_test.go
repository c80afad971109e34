package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/garyjia/bill-review/internal/application/port"
	"github.com/garyjia/bill-review/internal/domain/bill"
	"github.com/garyjia/bill-review/internal/domain/entity"
	"github.com/garyjia/bill-review/internal/domain/event"
)

type mockStore struct {
	mu          sync.Mutex
	listFunc    func(ctx context.Context) ([]port.RawRecord, error)
	createFunc  func(ctx context.Context, upload port.Upload) (*port.CreateResult, error)
	updateFunc  func(ctx context.Context, req port.UpdateRequest) error
	listCalls   int
	createCalls int
	updates     []port.UpdateRequest
}

func (m *mockStore) List(ctx context.Context) ([]port.RawRecord, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) Create(ctx context.Context, upload port.Upload) (*port.CreateResult, error) {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	if m.createFunc != nil {
		return m.createFunc(ctx, upload)
	}
	return &port.CreateResult{FileURL: "https://localhost:3456/images/test.jpg", Key: "1234"}, nil
}

func (m *mockStore) Update(ctx context.Context, req port.UpdateRequest) error {
	m.mu.Lock()
	m.updates = append(m.updates, req)
	m.mu.Unlock()
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req)
	}
	return nil
}

func (m *mockStore) calls() (list, create, update int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls, m.createCalls, len(m.updates)
}

type mockLogger struct {
	mu     sync.Mutex
	errors []string
}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{}) {}

func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func (m *mockLogger) errorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.errors)
}

type mockPublisher struct {
	mu     sync.Mutex
	events []*event.Event
}

func (m *mockPublisher) DispatchAsync(ctx context.Context, evt *event.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
}

func (m *mockPublisher) published() []*event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*event.Event(nil), m.events...)
}

type recordingView struct {
	accepted []string
	rejected []string
	rows     []port.BillRow
	groups   *bill.Groups
	columns  []port.Column
	messages []string
}

func (v *recordingView) AcceptFile(fileName string) { v.accepted = append(v.accepted, fileName) }
func (v *recordingView) RejectFile(reason string)   { v.rejected = append(v.rejected, reason) }
func (v *recordingView) RenderBills(rows []port.BillRow) {
	v.rows = rows
}
func (v *recordingView) RenderGroups(groups bill.Groups, columns []port.Column) {
	v.groups = &groups
	v.columns = columns
}
func (v *recordingView) ShowError(message string) { v.messages = append(v.messages, message) }

type recordingNavigator struct {
	routes []string
}

func (n *recordingNavigator) navigate(route string) {
	n.routes = append(n.routes, route)
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func fixtureBills() []entity.Bill {
	return []entity.Bill{
		{
			ID: "47qAXb6fIm2zOKkLzMro", Email: "a@a", Type: "Hôtel et logement", Name: "encore",
			Amount: intPtr(400), Date: "2004-04-04", VAT: "80", Pct: 20, Commentary: "séminaire billed",
			FileURL: strPtr("https://test.storage.tld/preview-facture-free-201801-pdf-1.jpg"), FileName: strPtr("preview-facture-free-201801-pdf-1.jpg"),
			Status: entity.StatusPending,
		},
		{
			ID: "BeKy5Mo4jkmdfPGYpTxZ", Email: "a@a", Type: "Services en ligne", Name: "test1",
			Amount: intPtr(100), Date: "2001-01-01", VAT: "", Pct: 20, Commentary: "plop",
			FileURL: strPtr("https://test.storage.tld/v0/b/billable.jpg"), FileName: strPtr("1592770761.jpeg"),
			Status: entity.StatusRefused, CommentAdmin: "en fait non",
		},
		{
			ID: "UIUZtnPQvnbFnB0ozvJh", Email: "a@a", Type: "Services en ligne", Name: "test3",
			Amount: intPtr(300), Date: "2003-03-03", VAT: "60", Pct: 20, Commentary: "",
			FileURL: strPtr("https://test.storage.tld/facture-client-php-exportee.jpg"), FileName: strPtr("facture-client-php-exportee-dans-document-non-modifiable.png"),
			Status: entity.StatusAccepted, CommentAdmin: "bon bah d'accord",
		},
		{
			ID: "qcCK3SzECmaZAGRrHjaC", Email: "a@a", Type: "Restaurants et bars", Name: "test2",
			Amount: intPtr(200), Date: "2002-02-02", VAT: "40", Pct: 20, Commentary: "test2",
			FileURL: strPtr("https://test.storage.tld/preview-facture-free-201801-pdf-1.jpg"), FileName: strPtr("preview-facture-free-201801-pdf-1.jpg"),
			Status: entity.StatusRefused, CommentAdmin: "pas la bonne facture",
		},
	}
}

// fixtureRecords encodes bills the way the store returns them
func fixtureRecords(bills []entity.Bill) []port.RawRecord {
	records := make([]port.RawRecord, 0, len(bills))
	for _, b := range bills {
		id := b.ID
		b.ID = ""
		data, err := json.Marshal(b)
		if err != nil {
			panic(err)
		}
		records = append(records, port.RawRecord{ID: id, Data: string(data)})
	}
	return records
}
