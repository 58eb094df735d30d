package rpc

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Nachtalb/CatalogScanner/internal/catalog"
	apperr "github.com/Nachtalb/CatalogScanner/internal/errors"
)

// EncodeRequest builds the Scan request for a media path on the server.
func EncodeRequest(path string, opts catalog.Options) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldPath:    structpb.NewStringValue(path),
		fieldLocale:  structpb.NewStringValue(opts.Locale),
		fieldMode:    structpb.NewStringValue(opts.Mode.String()),
		fieldForSale: structpb.NewBoolValue(opts.ForSale),
	}}
}

// DecodeRequest is the inverse of EncodeRequest. Missing fields take their
// zero value; the path is required.
func DecodeRequest(req *structpb.Struct) (string, catalog.Options, error) {
	fields := req.GetFields()
	path := fields[fieldPath].GetStringValue()
	if path == "" {
		return "", catalog.Options{}, apperr.New(apperr.CodeInvalidArgument, "path is required")
	}
	mode, err := catalog.ParseMode(fields[fieldMode].GetStringValue())
	if err != nil {
		return "", catalog.Options{}, apperr.Wrap(err, apperr.CodeInvalidArgument, "Invalid mode")
	}
	return path, catalog.Options{
		Mode:    mode,
		Locale:  fields[fieldLocale].GetStringValue(),
		ForSale: fields[fieldForSale].GetBoolValue(),
	}, nil
}

// EncodeResult builds the Scan response.
func EncodeResult(res *catalog.Result) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldMode:      structpb.NewStringValue(res.Mode.String()),
		fieldLocale:    structpb.NewStringValue(res.Locale),
		fieldItems:     stringList(res.Items),
		fieldUnmatched: stringList(res.Unmatched),
	}}
}

// DecodeResult is the inverse of EncodeResult.
func DecodeResult(resp *structpb.Struct) (*catalog.Result, error) {
	fields := resp.GetFields()
	mode, err := catalog.ParseMode(fields[fieldMode].GetStringValue())
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "Malformed scan response")
	}
	return &catalog.Result{
		Mode:      mode,
		Locale:    fields[fieldLocale].GetStringValue(),
		Items:     stringsOf(fields[fieldItems]),
		Unmatched: stringsOf(fields[fieldUnmatched]),
	}, nil
}

func stringList(ss []string) *structpb.Value {
	values := make([]*structpb.Value, len(ss))
	for i, s := range ss {
		values[i] = structpb.NewStringValue(s)
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

func stringsOf(v *structpb.Value) []string {
	values := v.GetListValue().GetValues()
	out := make([]string, 0, len(values))
	for _, item := range values {
		out = append(out, item.GetStringValue())
	}
	return out
}
