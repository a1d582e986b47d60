package database

import (
	"fmt"
	"strconv"

	"github.com/araddon/dateparse"
	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/pkg/errors"
	"github.com/xwb1989/sqlparser"
)

// A SelectClause contains all the parsed SQL data.
type SelectClause struct {
	Count           bool
	Tablename       string
	Matcher         q.Matcher
	Skip            int
	Limit           int
	OrderBy         []string
	OrderByReversed bool
}

// ParseSelect parses the given SELECT statement.
//
//	SELECT count(*) FROM events WHERE IsActive = true
//	SELECT * FROM gallery WHERE Category = 'team' ORDER BY CreatedAt DESC LIMIT 2,5
func ParseSelect(sql string) (*SelectClause, error) {
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse SQL")
	}

	s, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil, errors.New("not a select statement")
	}

	var sc SelectClause

	// Fields are ignored, whole records are always returned.
	for _, se := range s.SelectExprs {
		if v, ok := se.(*sqlparser.AliasedExpr); ok {
			if fn, ok := v.Expr.(*sqlparser.FuncExpr); ok {
				sc.Count = fn.Name.Lowered() == "count"
			}
		}
	}

	table, ok := s.From[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return nil, errors.New("unsupported FROM expression")
	}
	sc.Tablename = sqlparser.GetTableName(table.Expr).String()
	if _, ok := Tables()[sc.Tablename]; !ok {
		return nil, errors.Errorf("unknown tablename: %s", sc.Tablename)
	}

	sc.Matcher = q.And()
	if s.Where != nil {
		if sc.Matcher, err = parseWhere(s.Where.Expr); err != nil {
			return nil, err
		}
	}

	if s.Limit != nil {
		if s.Limit.Offset != nil {
			if sc.Skip, err = parseInt(s.Limit.Offset); err != nil {
				return nil, err
			}
		}
		if sc.Limit, err = parseInt(s.Limit.Rowcount); err != nil {
			return nil, err
		}
	}

	// Storm supports only one direction, any DESC reverses the whole ordering.
	for _, ob := range s.OrderBy {
		col, ok := ob.Expr.(*sqlparser.ColName)
		if !ok {
			return nil, errors.New("unsupported ORDER BY expression")
		}
		if ob.Direction == sqlparser.DescScr {
			sc.OrderByReversed = true
		}
		sc.OrderBy = append(sc.OrderBy, col.Name.String())
	}

	return &sc, nil
}

// Query prepares the Storm query of the clause.
func (sc *SelectClause) Query(db *storm.DB) storm.Query {
	query := db.Select(sc.Matcher)
	if sc.Skip > 0 {
		query = query.Skip(sc.Skip)
	}
	if sc.Limit > 0 {
		query = query.Limit(sc.Limit)
	}
	if len(sc.OrderBy) > 0 {
		query = query.OrderBy(sc.OrderBy...)
		if sc.OrderByReversed {
			query = query.Reverse()
		}
	}
	return query
}

func parseWhere(expr sqlparser.Expr) (q.Matcher, error) {
	switch v := expr.(type) {
	case *sqlparser.ParenExpr:
		return parseWhere(v.Expr)
	case *sqlparser.AndExpr:
		left, err := parseWhere(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := parseWhere(v.Right)
		if err != nil {
			return nil, err
		}
		return q.And(left, right), nil
	case *sqlparser.OrExpr:
		left, err := parseWhere(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := parseWhere(v.Right)
		if err != nil {
			return nil, err
		}
		return q.Or(left, right), nil
	case *sqlparser.IsExpr:
		col, ok := v.Expr.(*sqlparser.ColName)
		if !ok {
			return nil, errors.New("unsupported IS expression")
		}
		switch v.Operator {
		case sqlparser.IsNullStr:
			return q.Eq(col.Name.String(), nil), nil
		case sqlparser.IsNotNullStr:
			return q.Not(q.Eq(col.Name.String(), nil)), nil
		}
		return nil, errors.Errorf("unsupported operator: %s", v.Operator)
	case *sqlparser.ComparisonExpr:
		return parseComparison(v)
	}
	return nil, errors.Errorf("unsupported where expression: %s", sqlparser.String(expr))
}

func parseComparison(expr *sqlparser.ComparisonExpr) (q.Matcher, error) {
	col, ok := expr.Left.(*sqlparser.ColName)
	if !ok {
		return nil, errors.New("left operand must be a field name")
	}
	field := col.Name.String()

	var value any
	switch v := expr.Right.(type) {
	case sqlparser.BoolVal:
		value = bool(v)
	case *sqlparser.SQLVal:
		value = parseSQLVal(v)
	case sqlparser.ValTuple:
		var tuple []any
		for _, e := range v {
			sv, ok := e.(*sqlparser.SQLVal)
			if !ok {
				return nil, errors.New("unsupported tuple value")
			}
			tuple = append(tuple, parseSQLVal(sv))
		}
		value = tuple
	default:
		return nil, errors.Errorf("unsupported value: %s", sqlparser.String(expr.Right))
	}

	switch expr.Operator {
	case sqlparser.EqualStr:
		return q.Eq(field, value), nil
	case sqlparser.NotEqualStr:
		return q.Not(q.Eq(field, value)), nil
	case sqlparser.GreaterThanStr:
		return q.Gt(field, value), nil
	case sqlparser.GreaterEqualStr:
		return q.Gte(field, value), nil
	case sqlparser.LessThanStr:
		return q.Lt(field, value), nil
	case sqlparser.LessEqualStr:
		return q.Lte(field, value), nil
	case sqlparser.InStr:
		return q.In(field, value), nil
	case sqlparser.LikeStr:
		return q.Re(field, fmt.Sprint(value)), nil
	}
	return nil, errors.Errorf("unsupported operator: %s", expr.Operator)
}

func parseInt(expr sqlparser.Expr) (int, error) {
	v, ok := expr.(*sqlparser.SQLVal)
	if !ok || v.Type != sqlparser.IntVal {
		return 0, errors.New("LIMIT values must be integers")
	}
	n, err := strconv.Atoi(string(v.Val))
	return n, errors.Wrap(err, "could not parse integer")
}

func parseSQLVal(v *sqlparser.SQLVal) any {
	switch v.Type {
	case sqlparser.StrVal:
		// Dates are compared as time.Time.
		if t, err := dateparse.ParseAny(string(v.Val)); err == nil {
			return t.UTC()
		}
		return string(v.Val)
	case sqlparser.IntVal:
		n, _ := strconv.Atoi(string(v.Val))
		return n
	case sqlparser.FloatVal:
		f, _ := strconv.ParseFloat(string(v.Val), 64)
		return f
	}
	return string(v.Val)
}
