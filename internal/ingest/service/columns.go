package service

import "strings"

// Column names as they appear in the CEAP export header.
const (
	colNome            = "txNomeParlamentar"
	colCPF             = "cpf"
	colDeputadoID      = "nuDeputadoId"
	colCarteira        = "nuCarteiraParlamentar"
	colUF              = "sgUF"
	colPartido         = "sgPartido"
	colDescricao       = "txtDescricao"
	colEspecificacao   = "txtDescricaoEspecificacao"
	colFornecedor      = "txtFornecedor"
	colCnpjCpf         = "txtCNPJCPF"
	colNumeroDoc       = "txtNumero"
	colTipoDoc         = "indTipoDocumento"
	colDataEmissao     = "datEmissao"
	colValorDocumento  = "vlrDocumento"
	colValorGlosa      = "vlrGlosa"
	colValorLiquido    = "vlrLiquido"
	colMes             = "numMes"
	colAno             = "numAno"
	colParcela         = "numParcela"
	colPassageiro      = "txtPassageiro"
	colTrecho          = "txtTrecho"
	colLote            = "numLote"
	colUrlDocumento    = "urlDocumento"
)

// rowView exposes one CSV record through header names. Missing columns
// read as empty so truncated rows degrade to absent fields instead of
// panicking.
type rowView struct {
	cols   map[string]int
	fields []string
}

func (r rowView) get(name string) string {
	idx, ok := r.cols[name]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return r.fields[idx]
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		name = strings.Trim(name, `"`)
		cols[name] = i
	}
	return cols
}
