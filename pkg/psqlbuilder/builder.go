package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder uses PostgreSQL $N placeholders.
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}
