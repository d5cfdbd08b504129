package messagetemplate

import (
	"testing"

	"github.com/stretchr/testify/require"
	"maintenance-backend/models"
)

func TestBuild(t *testing.T) {
	data := models.TemplateData{
		WorkOrderNumber:   "WO-20260304-AB12C",
		TenantName:        "Maria",
		WorkRequested:     "The sink <kitchen> is leaking",
		WorkRequestedOrig: "El fregadero <cocina> gotea",
		Language:          "es",
		ShowOriginal:      true,
		PermissionToEnter: true,
		Message:           "Vendremos el lunes",
	}

	t.Run("письмо на испанском", func(t *testing.T) {
		body, err := Build(KindApproved, models.LanguageEs, data)
		require.NoError(t, err)
		require.Contains(t, body, "ha sido aprobada")
		require.Contains(t, body, "Vendremos el lunes")
	})
	t.Run("нет шаблона на испанском - английский", func(t *testing.T) {
		body, err := Build(KindAdminNewRequest, models.LanguageEs, data)
		require.NoError(t, err)
		require.Contains(t, body, "A new maintenance request")
		require.Contains(t, body, "El fregadero <cocina> gotea")
	})
	t.Run("pdf для администратора показывает оригинал", func(t *testing.T) {
		body, err := Build(KindPdf, models.LanguageEn, data)
		require.NoError(t, err)
		require.Contains(t, body, "The sink ‹kitchen› is leaking")
		require.Contains(t, body, "Original (es)")
	})
	t.Run("неизвестный шаблон", func(t *testing.T) {
		_, err := Build(Kind("unknown"), models.LanguageEn, data)
		require.Error(t, err)
	})
}

func TestSubjectAndDefaults(t *testing.T) {
	require.Equal(t, "Solicitud de mantenimiento aprobada - WO-1", Subject(KindApproved, models.LanguageEs, "WO-1"))
	require.Equal(t, "New maintenance request WO-1", Subject(KindAdminNewRequest, models.LanguageEs, "WO-1"))
	require.NotEmpty(t, DefaultStatusMessage(models.RequestStatusApproved, models.LanguageEs))
	require.Empty(t, DefaultStatusMessage(models.RequestStatusRejected, models.LanguageEn))
	require.Equal(t, "Rechazada", StatusName(models.RequestStatusRejected, models.LanguageEs))
}
