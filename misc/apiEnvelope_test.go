package misc_test

import (
	"encoding/json"
	"testing"

	"github.com/shaorongqiang/permission-api/misc"

	"github.com/go-playground/validator/v10"
	. "github.com/onsi/gomega"
)

func TestBindParams(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should unmarshal params into the target and validate it", func(t *testing.T) {
		req := misc.ApiRequest{}
		Expect(json.Unmarshal([]byte(`{"id": 3, "params": {"page": 2, "page_size": 20}}`), &req)).To(BeNil())
		Expect(string(req.ID)).To(Equal("3"))

		page := misc.PageRequest{}
		Expect(req.BindParams(&page)).To(BeNil())
		Expect(page).To(Equal(misc.PageRequest{Page: 2, PageSize: 20}))
	})

	t.Run("should reject params failing validation", func(t *testing.T) {
		req := misc.ApiRequest{}
		Expect(json.Unmarshal([]byte(`{"id": 3, "params": {"page": 0, "page_size": 2000}}`), &req)).To(BeNil())

		page := misc.PageRequest{}
		err := req.BindParams(&page)
		Expect(err).ToNot(BeNil())
		Expect(err).To(BeAssignableToTypeOf(validator.ValidationErrors{}))
	})

	t.Run("missing params should still run validation", func(t *testing.T) {
		req := misc.ApiRequest{}
		Expect(json.Unmarshal([]byte(`{"id": 3}`), &req)).To(BeNil())

		page := misc.PageRequest{}
		Expect(req.BindParams(&page)).ToNot(BeNil())
	})

	t.Run("the id may be any json value and is echoed verbatim", func(t *testing.T) {
		req := misc.ApiRequest{}
		Expect(json.Unmarshal([]byte(`{"id": {"trace": "abc"}, "params": {"page": 1, "page_size": 1}}`), &req)).To(BeNil())

		resp, err := json.Marshal(misc.Success(req.ID, "ok"))
		Expect(err).To(BeNil())
		Expect(string(resp)).To(MatchJSON(`{"id": {"trace": "abc"}, "code": 0, "data": "ok"}`))
	})
}

func TestResponseEnvelopes(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should render the documented codes", func(t *testing.T) {
		body, err := json.Marshal(misc.SuccessWithoutData(json.RawMessage(`7`)))
		Expect(err).To(BeNil())
		Expect(string(body)).To(MatchJSON(`{"id": 7, "code": 0, "data": "success"}`))

		body, err = json.Marshal(misc.UsernameNotFound(json.RawMessage(`7`)))
		Expect(err).To(BeNil())
		Expect(string(body)).To(MatchJSON(`{"id": 7, "code": -1, "error": "Username not found"}`))

		body, err = json.Marshal(misc.WrongPassword(json.RawMessage(`7`)))
		Expect(err).To(BeNil())
		Expect(string(body)).To(MatchJSON(`{"id": 7, "code": -2, "error": "Wrong password"}`))
	})
}
