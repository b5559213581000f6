package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Insert persists the header and all line items in one transaction.
func (st *Store) Insert(ctx context.Context, s *Settlement) error {
	tx, err := st.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
    INSERT INTO settlements (id, employee_id, period, settlement_date, basic_salary,
      presentismo_percentage, seniority_years, seniority_amount, presentismo_amount,
      total_remunerative, total_non_remunerative, total_deductions, total_net, gross_pay, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
    RETURNING created_at, updated_at
  `,
		s.ID, s.EmployeeID, s.Period, nullIfZeroTime(s.SettlementDate), s.BasicSalary,
		s.PresentismoPercentage, s.SeniorityYears, s.SeniorityAmount, s.PresentismoAmount,
		s.TotalRemunerative, s.TotalNonRemunerative, s.TotalDeductions, s.TotalNet, s.GrossPay, s.Status,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return err
	}
	if err := st.insertItems(ctx, tx, s); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update rewrites the header and replaces every line item. Items carry no
// server-side history, so delete-and-reinsert keeps ordering and linkage
// exactly as the caller computed them.
func (st *Store) Update(ctx context.Context, s *Settlement) error {
	tx, err := st.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
    UPDATE settlements
    SET employee_id = $1,
        period = $2,
        settlement_date = $3,
        basic_salary = $4,
        presentismo_percentage = $5,
        seniority_years = $6,
        seniority_amount = $7,
        presentismo_amount = $8,
        total_remunerative = $9,
        total_non_remunerative = $10,
        total_deductions = $11,
        total_net = $12,
        gross_pay = $13,
        status = $14,
        updated_at = now()
    WHERE id = $15
  `,
		s.EmployeeID, s.Period, nullIfZeroTime(s.SettlementDate), s.BasicSalary,
		s.PresentismoPercentage, s.SeniorityYears, s.SeniorityAmount, s.PresentismoAmount,
		s.TotalRemunerative, s.TotalNonRemunerative, s.TotalDeductions, s.TotalNet, s.GrossPay, s.Status, s.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	for _, table := range []string{"settlement_remunerative_items", "settlement_non_remunerative_items", "settlement_deduction_items"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE settlement_id = $1`, table), s.ID); err != nil {
			return err
		}
	}
	if err := st.insertItems(ctx, tx, s); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (st *Store) insertItems(ctx context.Context, tx pgx.Tx, s *Settlement) error {
	for pos, item := range s.RemunerativeItems {
		_, err := tx.Exec(ctx, `
      INSERT INTO settlement_remunerative_items (id, settlement_id, position, name, percentage, amount, applies_percentage)
      VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, item.ID, s.ID, pos, item.Name, item.Percentage, item.Amount, item.AppliesPercentage)
		if err != nil {
			return err
		}
	}
	for pos, item := range s.NonRemunerativeItems {
		_, err := tx.Exec(ctx, `
      INSERT INTO settlement_non_remunerative_items (id, settlement_id, position, name, percentage, amount,
        applies_percentage, is_seniority_row, is_attendance_row, reference_item_id)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    `, item.ID, s.ID, pos, item.Name, item.Percentage, item.Amount,
			item.AppliesPercentage, item.IsSeniorityRow, item.IsAttendanceRow, nullIfEmpty(item.ReferenceItemID))
		if err != nil {
			return err
		}
	}
	for pos, item := range s.DeductionItems {
		_, err := tx.Exec(ctx, `
      INSERT INTO settlement_deduction_items (id, settlement_id, position, name, percentage,
        checked_remunerative, checked_non_remunerative, remunerative_amount, non_remunerative_amount)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `, item.ID, s.ID, pos, item.Name, item.Percentage,
			item.CheckedRemunerative, item.CheckedNonRemunerative, item.RemunerativeAmount, item.NonRemunerativeAmount)
		if err != nil {
			return err
		}
	}
	return nil
}

func (st *Store) Get(ctx context.Context, id string) (*Settlement, error) {
	var s Settlement
	var settlementDate *time.Time
	err := st.DB.QueryRow(ctx, `
    SELECT id, employee_id, period, settlement_date, basic_salary, presentismo_percentage,
           seniority_years, seniority_amount, presentismo_amount,
           total_remunerative, total_non_remunerative, total_deductions, total_net, gross_pay,
           status, created_at, updated_at
    FROM settlements
    WHERE id = $1
  `, id).Scan(
		&s.ID, &s.EmployeeID, &s.Period, &settlementDate, &s.BasicSalary, &s.PresentismoPercentage,
		&s.SeniorityYears, &s.SeniorityAmount, &s.PresentismoAmount,
		&s.TotalRemunerative, &s.TotalNonRemunerative, &s.TotalDeductions, &s.TotalNet, &s.GrossPay,
		&s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if settlementDate != nil {
		s.SettlementDate = *settlementDate
	}
	if err := st.loadItems(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (st *Store) loadItems(ctx context.Context, s *Settlement) error {
	rows, err := st.DB.Query(ctx, `
    SELECT id, name, percentage, amount, applies_percentage
    FROM settlement_remunerative_items
    WHERE settlement_id = $1
    ORDER BY position
  `, s.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var item RemunerativeItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Percentage, &item.Amount, &item.AppliesPercentage); err != nil {
			return err
		}
		s.RemunerativeItems = append(s.RemunerativeItems, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = st.DB.Query(ctx, `
    SELECT id, name, percentage, amount, applies_percentage,
           is_seniority_row, is_attendance_row, COALESCE(reference_item_id::text, '')
    FROM settlement_non_remunerative_items
    WHERE settlement_id = $1
    ORDER BY position
  `, s.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var item NonRemunerativeItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Percentage, &item.Amount, &item.AppliesPercentage,
			&item.IsSeniorityRow, &item.IsAttendanceRow, &item.ReferenceItemID); err != nil {
			return err
		}
		s.NonRemunerativeItems = append(s.NonRemunerativeItems, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = st.DB.Query(ctx, `
    SELECT id, name, percentage, checked_remunerative, checked_non_remunerative,
           remunerative_amount, non_remunerative_amount
    FROM settlement_deduction_items
    WHERE settlement_id = $1
    ORDER BY position
  `, s.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var item DeductionItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Percentage, &item.CheckedRemunerative,
			&item.CheckedNonRemunerative, &item.RemunerativeAmount, &item.NonRemunerativeAmount); err != nil {
			return err
		}
		s.DeductionItems = append(s.DeductionItems, item)
	}
	return rows.Err()
}

func (st *Store) Count(ctx context.Context, employeeID string) (int, error) {
	var count int
	var err error
	if employeeID == "" {
		err = st.DB.QueryRow(ctx, `SELECT COUNT(1) FROM settlements`).Scan(&count)
	} else {
		err = st.DB.QueryRow(ctx, `SELECT COUNT(1) FROM settlements WHERE employee_id = $1`, employeeID).Scan(&count)
	}
	return count, err
}

// List returns settlement headers only; items are loaded on Get.
func (st *Store) List(ctx context.Context, employeeID string, limit, offset int) ([]Settlement, error) {
	query := `
    SELECT id, employee_id, period, settlement_date, basic_salary, presentismo_percentage,
           seniority_years, seniority_amount, presentismo_amount,
           total_remunerative, total_non_remunerative, total_deductions, total_net, gross_pay,
           status, created_at, updated_at
    FROM settlements
  `
	args := []any{}
	if employeeID != "" {
		query += ` WHERE employee_id = $1`
		args = append(args, employeeID)
	}
	query += ` ORDER BY created_at DESC` + limitOffsetClause(len(args))
	args = append(args, limit, offset)

	rows, err := st.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Settlement
	for rows.Next() {
		var s Settlement
		var settlementDate *time.Time
		if err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.Period, &settlementDate, &s.BasicSalary, &s.PresentismoPercentage,
			&s.SeniorityYears, &s.SeniorityAmount, &s.PresentismoAmount,
			&s.TotalRemunerative, &s.TotalNonRemunerative, &s.TotalDeductions, &s.TotalNet, &s.GrossPay,
			&s.Status, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if settlementDate != nil {
			s.SettlementDate = *settlementDate
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func limitOffsetClause(argCount int) string {
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount+1, argCount+2)
}

// Delete removes the settlement; item rows go with it via ON DELETE CASCADE.
func (st *Store) Delete(ctx context.Context, id string) error {
	cmd, err := st.DB.Exec(ctx, `DELETE FROM settlements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// EmployeeSeniorityStart reads the hire date that anchors seniority. The
// employee record is authoritative; the settlement stores no copy.
func (st *Store) EmployeeSeniorityStart(ctx context.Context, employeeID string) (time.Time, error) {
	var hireDate time.Time
	err := st.DB.QueryRow(ctx, `SELECT hire_date FROM employees WHERE id = $1`, employeeID).Scan(&hireDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, nil
	}
	return hireDate, err
}

// ReciboData joins employer and employee identity onto the settlement for
// the PDF renderer.
func (st *Store) ReciboData(ctx context.Context, settlementID string) (*ReciboData, error) {
	s, err := st.Get(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	data := ReciboData{Settlement: *s}
	err = st.DB.QueryRow(ctx, `
    SELECT e.first_name || ' ' || e.last_name,
           e.cuil,
           e.hire_date,
           COALESCE(e.category, ''),
           COALESCE(e.sub_category, ''),
           c.name,
           c.cuit,
           COALESCE(c.address, '')
    FROM employees e
    JOIN companies c ON c.id = e.company_id
    WHERE e.id = $1
  `, s.EmployeeID).Scan(
		&data.EmployeeName, &data.EmployeeCUIL, &data.EmployeeHire,
		&data.Category, &data.SubCategory,
		&data.CompanyName, &data.CompanyCUIT, &data.CompanyAddress,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullIfZeroTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
