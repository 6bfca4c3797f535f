package types

// ProcessorName is the acquirer identity configured on a merchant's
// processor record.
type ProcessorName string

const (
	ProcessorAurus      ProcessorName = "Aurus Processor"
	ProcessorSandbox    ProcessorName = "Sandbox Processor"
	ProcessorRedeban    ProcessorName = "Redeban Processor"
	ProcessorNiubiz     ProcessorName = "Niubiz Processor"
	ProcessorProsa      ProcessorName = "Prosa Processor"
	ProcessorBillpocket ProcessorName = "BillPocket Processor"
	ProcessorTransbank  ProcessorName = "Transbank Processor"
	ProcessorCredomatic ProcessorName = "Credomatic Processor"
	ProcessorCredibanco ProcessorName = "Credibanco Processor"
	ProcessorKushkiAcq  ProcessorName = "Kushki Acquirer Processor"
	ProcessorFis        ProcessorName = "Fis Processor"
	ProcessorCredimatic ProcessorName = "Credimatic Processor"
	ProcessorDatafast   ProcessorName = "Datafast Processor"
)

// CardProvider identifies which adapter variant services a processor.
type CardProvider string

const (
	ProviderAurus      CardProvider = "aurus"
	ProviderSandbox    CardProvider = "sandbox"
	ProviderRedeban    CardProvider = "redeban"
	ProviderNiubiz     CardProvider = "niubiz"
	ProviderProsa      CardProvider = "prosa"
	ProviderBillpocket CardProvider = "billpocket"
	ProviderTransbank  CardProvider = "transbank"
	ProviderCredomatic CardProvider = "credomatic"
	ProviderCredibanco CardProvider = "credibanco"
	ProviderKushkiAcq  CardProvider = "kushki"
	ProviderFis        CardProvider = "fis"
	ProviderCredimatic CardProvider = "credimatic"
	ProviderDatafast   CardProvider = "datafast"
)

// processorProviders is the static 1:1 lookup from configured processor name
// to adapter variant. Resolution is a map lookup; business logic never
// branches on processor name strings.
var processorProviders = map[ProcessorName]CardProvider{
	ProcessorAurus:      ProviderAurus,
	ProcessorSandbox:    ProviderSandbox,
	ProcessorRedeban:    ProviderRedeban,
	ProcessorNiubiz:     ProviderNiubiz,
	ProcessorProsa:      ProviderProsa,
	ProcessorBillpocket: ProviderBillpocket,
	ProcessorTransbank:  ProviderTransbank,
	ProcessorCredomatic: ProviderCredomatic,
	ProcessorCredibanco: ProviderCredibanco,
	ProcessorKushkiAcq:  ProviderKushkiAcq,
	ProcessorFis:        ProviderFis,
	ProcessorCredimatic: ProviderCredimatic,
	ProcessorDatafast:   ProviderDatafast,
}

// ProviderFor resolves a configured processor name to its adapter variant.
func ProviderFor(p ProcessorName) (CardProvider, bool) {
	v, ok := processorProviders[p]
	return v, ok
}

// AllProviders returns every known adapter variant, used by wiring to check
// registry completeness.
func AllProviders() []CardProvider {
	out := make([]CardProvider, 0, len(processorProviders))
	for _, v := range processorProviders {
		out = append(out, v)
	}
	return out
}
