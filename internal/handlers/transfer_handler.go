package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"

	"hospital-admin/internal/apperror"
	"hospital-admin/internal/models"
	"hospital-admin/internal/render"
	"hospital-admin/internal/transfer"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (h *Handler) PatientSheetPage(c *gin.Context) {
	h.page(c, http.StatusOK, "carga-excel", "Pacientes (Excel)", render.TransferPage{
		Heading:      "Carga y descarga de pacientes",
		UploadPath:   "/upload-x",
		DownloadPath: "/download-x",
		Columns:      models.PatientColumns,
	})
}

func (h *Handler) EquipmentSheetPage(c *gin.Context) {
	h.page(c, http.StatusOK, "carga-excel", "Equipos (Excel)", render.TransferPage{
		Heading:      "Carga y descarga de equipos",
		UploadPath:   "/upload-e-x",
		DownloadPath: "/download-e-x",
		Columns:      models.EquipmentColumns,
	})
}

func (h *Handler) DocumentsPage(c *gin.Context) {
	h.page(c, http.StatusOK, "carga-pdf", "Documentos PDF", nil)
}

// upload caps the request body and returns the named multipart file.
func (h *Handler) upload(c *gin.Context, field string) (*multipart.FileHeader, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)
	fh, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return nil, apperror.Wrap(apperror.KindTooLarge, "El archivo supera el tamaño máximo permitido", err)
		}
		return nil, apperror.Wrap(apperror.KindValidation, "No se ha subido ningún archivo.", err)
	}
	return fh, nil
}

func (h *Handler) readSheet(c *gin.Context, columns []string) (*transfer.Sheet, error) {
	fh, err := h.upload(c, "excelFile")
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperror.Store("no se pudo leer el archivo", err)
	}
	defer f.Close()

	sheet, err := transfer.ReadSheet(f)
	if err != nil {
		if errors.Is(err, transfer.ErrEmptySheet) {
			return nil, apperror.Wrap(apperror.KindValidation, "El archivo Excel está vacío o no contiene datos válidos.", err)
		}
		return nil, apperror.Wrap(apperror.KindValidation, "El archivo no es un Excel válido.", err)
	}
	if missing := sheet.MissingColumns(columns...); len(missing) > 0 {
		return nil, apperror.Validation("Faltan columnas en el archivo: " + strings.Join(missing, ", "))
	}
	return sheet, nil
}

func cellError(err error) error {
	return apperror.Wrap(apperror.KindValidation, err.Error(), err)
}

func decodePatients(sheet *transfer.Sheet) ([]models.Patient, error) {
	patients := make([]models.Patient, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		d := transfer.NewRowReader(row)
		p := models.Patient{
			Name:      d.Text("nombre_paciente", true),
			LastName:  d.Text("apellido", true),
			Age:       d.Int("edad"),
			Weight:    d.Float("peso"),
			Height:    d.Float("altura"),
			HeartRate: d.Int("frecuencia_cardiaca"),
			DoctorID:  d.Uint("id_ma"),
		}
		if err := d.Err(); err != nil {
			return nil, cellError(err)
		}
		patients = append(patients, p)
	}
	return patients, nil
}

func decodeEquipment(sheet *transfer.Sheet) ([]models.Equipment, error) {
	equipment := make([]models.Equipment, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		d := transfer.NewRowReader(row)
		e := models.Equipment{
			Name:            d.Text("nombre_equipo", true),
			Status:          d.Text("estado", true),
			Description:     d.Text("descripcion", false),
			LastMaintenance: d.Date("ultimo_mantenimiento"),
			DoctorID:        d.Uint("id_ma"),
			HospitalID:      d.Uint("id_hospital"),
		}
		if err := d.Err(); err != nil {
			return nil, cellError(err)
		}
		equipment = append(equipment, e)
	}
	return equipment, nil
}

// importRows inserts every row with one statement inside one transaction.
func importRows[T any](h *Handler, c *gin.Context, rows []T) error {
	return h.store(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rows).Error; err != nil {
			return apperror.Store("Error al cargar los datos desde el archivo Excel.", err)
		}
		return nil
	})
}

func (h *Handler) ImportPatients(c *gin.Context) {
	// 1. Parse and validate every row before touching the store
	sheet, err := h.readSheet(c, models.PatientColumns)
	if err != nil {
		h.fail(c, "import patients", err, "/pacientes-x")
		return
	}
	patients, err := decodePatients(sheet)
	if err != nil {
		h.fail(c, "import patients", err, "/pacientes-x")
		return
	}

	// 2. All or nothing
	if err := importRows(h, c, patients); err != nil {
		h.fail(c, "import patients", err, "/pacientes-x")
		return
	}

	h.log.Info("patients imported", zap.Int("rows", len(patients)), zap.Uint64("by", h.identity(c).ID))
	h.message(c, http.StatusOK, "Los datos se han subido con éxito al servidor",
		strconv.Itoa(len(patients))+" registros importados", "/pacientes-x")
}

func (h *Handler) ImportEquipment(c *gin.Context) {
	sheet, err := h.readSheet(c, models.EquipmentColumns)
	if err != nil {
		h.fail(c, "import equipment", err, "/equipos-e-x")
		return
	}
	equipment, err := decodeEquipment(sheet)
	if err != nil {
		h.fail(c, "import equipment", err, "/equipos-e-x")
		return
	}

	if err := importRows(h, c, equipment); err != nil {
		h.fail(c, "import equipment", err, "/equipos-e-x")
		return
	}

	h.log.Info("equipment imported", zap.Int("rows", len(equipment)), zap.Uint64("by", h.identity(c).ID))
	h.message(c, http.StatusOK, "Los datos se han subido con éxito al servidor",
		strconv.Itoa(len(equipment))+" registros importados", "/equipos-e-x")
}

func patientSheetRows(patients []models.Patient) [][]interface{} {
	return lo.Map(patients, func(p models.Patient, _ int) []interface{} {
		return []interface{}{p.ID, p.Name, p.LastName, p.Age, p.Weight, p.Height, p.HeartRate, p.DoctorID}
	})
}

func equipmentSheetRows(equipment []models.Equipment) [][]interface{} {
	return lo.Map(equipment, func(e models.Equipment, _ int) []interface{} {
		return []interface{}{e.ID, e.Name, e.Status, e.Description, e.LastMaintenance, e.DoctorID, e.HospitalID}
	})
}

func (h *Handler) ExportPatients(c *gin.Context) {
	var patients []models.Patient
	if err := h.store(c).Order("id").Find(&patients).Error; err != nil {
		h.fail(c, "export patients", apperror.Store("Error al obtener los datos.", err), "/pacientes-x")
		return
	}
	header := append([]string{"id"}, models.PatientColumns...)
	h.serveExport(c, "export patients", "pacientes-*.xlsx", "pacientes.xlsx", "/pacientes-x", func(w io.Writer) error {
		return transfer.WriteSheet(w, "pacientes", header, patientSheetRows(patients))
	})
}

func (h *Handler) ExportEquipment(c *gin.Context) {
	var equipment []models.Equipment
	if err := h.store(c).Order("id").Find(&equipment).Error; err != nil {
		h.fail(c, "export equipment", apperror.Store("Error al obtener los datos.", err), "/equipos-e-x")
		return
	}
	header := append([]string{"id"}, models.EquipmentColumns...)
	h.serveExport(c, "export equipment", "equipos-*.xlsx", "equipos.xlsx", "/equipos-e-x", func(w io.Writer) error {
		return transfer.WriteSheet(w, "equipos", header, equipmentSheetRows(equipment))
	})
}

func (h *Handler) PatientReport(c *gin.Context) {
	var patients []models.Patient
	if err := h.store(c).Order("id").Find(&patients).Error; err != nil {
		h.fail(c, "patient report", apperror.Store("Error al obtener los datos.", err), "/pacientes-pdf")
		return
	}
	report := transfer.Report{
		Title:  "Pacientes registrados",
		Header: []string{"ID", "Nombre", "Apellido", "Edad", "Peso", "Altura", "Frecuencia Cardiaca"},
		Rows: lo.Map(patients, func(p models.Patient, _ int) []string {
			return []string{
				strconv.FormatUint(p.ID, 10), p.Name, p.LastName, strconv.Itoa(p.Age),
				formatFloat(p.Weight), formatFloat(p.Height), strconv.Itoa(p.HeartRate),
			}
		}),
	}
	h.serveExport(c, "patient report", "pacientes-*.pdf", "pacientes.pdf", "/pacientes-pdf", func(w io.Writer) error {
		return transfer.WritePDF(w, report)
	})
}

func (h *Handler) EquipmentReport(c *gin.Context) {
	var equipment []models.Equipment
	if err := h.store(c).Order("id").Find(&equipment).Error; err != nil {
		h.fail(c, "equipment report", apperror.Store("Error al obtener los datos.", err), "/pacientes-pdf")
		return
	}
	report := transfer.Report{
		Title:  "Equipos registrados",
		Header: []string{"ID", "Nombre", "Estado", "Descripción", "Último mantenimiento"},
		Rows: lo.Map(equipment, func(e models.Equipment, _ int) []string {
			return []string{strconv.FormatUint(e.ID, 10), e.Name, e.Status, e.Description, e.LastMaintenance}
		}),
	}
	h.serveExport(c, "equipment report", "equipos-*.pdf", "equipos.pdf", "/pacientes-pdf", func(w io.Writer) error {
		return transfer.WritePDF(w, report)
	})
}

func (h *Handler) serveExport(c *gin.Context, op, pattern, name, back string, write func(io.Writer) error) {
	if err := transfer.ServeTempFile(c, h.opts.UploadDir, pattern, name, write); err != nil {
		h.fail(c, op, apperror.Store("Error al generar el archivo.", err), back)
	}
}

// UploadDocument stores a PDF and records it. The file is removed again when
// the record cannot be written.
func (h *Handler) UploadDocument(c *gin.Context) {
	fh, err := h.upload(c, "pdfFile")
	if err != nil {
		h.fail(c, "upload document", err, "/pacientes-pdf")
		return
	}

	name, path, err := transfer.StoreDocument(h.opts.UploadDir, fh)
	if err != nil {
		if errors.Is(err, transfer.ErrNotPDF) {
			err = apperror.Wrap(apperror.KindValidation, "Solo se permiten archivos PDF.", err)
		} else {
			err = apperror.Store("Hubo un error al guardar el archivo.", err)
		}
		h.fail(c, "upload document", err, "/pacientes-pdf")
		return
	}

	doc := models.Document{FileName: name}
	if err := h.store(c).Create(&doc).Error; err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			h.log.Warn("remove orphan document", zap.String("file", name), zap.Error(rmErr))
		}
		h.fail(c, "upload document", apperror.Store("Hubo un error al guardar el archivo en la base de datos.", err), "/pacientes-pdf")
		return
	}

	h.message(c, http.StatusOK, "PDF cargado correctamente", "Archivo cargado correctamente", "/pacientes-pdf")
}
