package legacydomain

// RecordKind são os tipos de registro expostos pela API da loja legada.
// Os nomes não batem com os tipos de evento do core de propósito: o sistema
// legado tem vocabulário próprio e a reconciliação é papel do adaptador.
const (
	RecordDealWon         = "deal_won"
	RecordInvoice         = "invoice"
	RecordMeetingDone     = "meeting_done"
	RecordMeetingBooked   = "meeting_booked"
	RecordStatusCancelled = "cancelled"
)

// Record é um registro como a API legada o devolve: ids como string,
// valores monetários como string decimal e responsáveis às vezes como id,
// às vezes como nome desnormalizado.
type Record struct {
	ID            string `json:"id,omitempty"`
	LeadID        string `json:"lead_id,omitempty"`
	Kind          string `json:"kind,omitempty"`
	Status        string `json:"status,omitempty"`
	DueDate       string `json:"due_date,omitempty"`
	Value         string `json:"value,omitempty"`
	Tax           string `json:"tax,omitempty"`
	Currency      string `json:"currency,omitempty"`
	OwnerID       *int64 `json:"owner_id,omitempty"`
	CreatedUser   string `json:"created_user,omitempty"`
	ClosedUser    string `json:"closed_user,omitempty"`
	MeetingUser   string `json:"meeting_user,omitempty"`
	CollectorUser string `json:"collector_user,omitempty"`
}

// GetRecordsParams são os parâmetros da consulta de registros por período
type GetRecordsParams struct {
	Kind      string
	StartDate string
	EndDate   string
}
