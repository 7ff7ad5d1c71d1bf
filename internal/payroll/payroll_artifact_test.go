package payroll_test

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/YugandharPise/SME-HR/internal/payroll"
	"github.com/YugandharPise/SME-HR/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactName(t *testing.T) {
	assert.Equal(t, "payslip-4-2024-05.pdf", payroll.ArtifactName(4, "2024-05"))
}

func TestDirArtifactStore(t *testing.T) {
	st, err := payroll.NewDirArtifactStore(t.TempDir())
	require.NoError(t, err)

	ok, err := st.Exists("payslip-1-2024-05.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = st.Open("payslip-1-2024-05.pdf")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, st.Save("payslip-1-2024-05.pdf", []byte("one")))
	require.NoError(t, st.Save("payslip-1-2024-05.pdf", []byte("two")))

	data, err := st.Open("payslip-1-2024-05.pdf")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	for _, name := range []string{"", "..", "../x.pdf", "sub/x.pdf"} {
		assert.Error(t, st.Save(name, []byte("x")), name)
		_, err := st.Open(name)
		assert.Error(t, err, name)
	}
}

func TestPDFRenderer(t *testing.T) {
	p := store.Payslip{
		ID:           1,
		EmployeeID:   1,
		EmployeeName: "Jane Doe",
		Period:       "2024-05",
		PayDate:      time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC),
		Basic:        7500,
		Deductions:   1125,
		NetPay:       6375,
		ArtifactPath: "payslip-1-2024-05.pdf",
	}

	data, err := payroll.NewPDFRenderer().Render(p)

	require.NoError(t, err)
	assert.True(t, len(data) > 100)
	assert.Equal(t, "%PDF-", string(data[:5]))
}

func TestFlatRate(t *testing.T) {
	assert.InDelta(t, 1125.0, payroll.FlatRate{Rate: 0.15}.Deductions(7500), 1e-9)
	assert.Equal(t, 0.0, payroll.FlatRate{}.Deductions(7500))
}
