package ruby

import (
	"context"
	"testing"

	"github.com/roveo/codextract/model"
)

func TestExtractClassWithMethodsAndAccess(t *testing.T) {
	src := []byte(`module Greetable
  # Says hello.
  def greet(name)
    "hi #{name}"
  end
end

class Greeter
  include Greetable

  attr_reader :name

  def initialize(name)
    @name = name
  end

  private

  def secret
    42
  end
end
`)
	items, err := (Extractor{}).Extract(context.Background(), "greeter.rb", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var mod, cls, greet, secret, reader *model.ParsedItem
	for i := range items {
		switch {
		case items[i].Kind == model.KindModule:
			mod = &items[i]
		case items[i].Kind == model.KindClass:
			cls = &items[i]
		case items[i].Kind == model.KindMethod && items[i].Name == "greet":
			greet = &items[i]
		case items[i].Kind == model.KindMethod && items[i].Name == "secret":
			secret = &items[i]
		case items[i].Kind == model.KindProperty && items[i].Name == "name":
			reader = &items[i]
		}
	}
	if mod == nil || greet == nil || greet.DocComment != "Says hello." {
		t.Fatalf("unexpected module/method: %+v %+v", mod, greet)
	}
	if cls == nil {
		t.Fatalf("expected class item")
	}
	meta := cls.Metadata.(model.RubyMetadata)
	if len(meta.Mixins) != 1 || meta.Mixins[0] != "Greetable" {
		t.Errorf("expected mixin Greetable, got %+v", meta.Mixins)
	}
	if reader == nil {
		t.Fatalf("expected attr_reader :name")
	}
	if secret == nil || secret.Visibility != model.Private {
		t.Fatalf("expected secret to be private, got %+v", secret)
	}
}

func TestSingletonMethod(t *testing.T) {
	src := []byte(`class Widget
  def self.build
    new
  end
end
`)
	items, err := (Extractor{}).Extract(context.Background(), "widget.rb", src)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	var method *model.ParsedItem
	for i := range items {
		if items[i].Kind == model.KindMethod {
			method = &items[i]
		}
	}
	if method == nil {
		t.Fatal("expected a method item")
	}
	meta := method.Metadata.(model.RubyMetadata)
	if !meta.IsClassMethod || !meta.IsSingleton {
		t.Errorf("expected class/singleton method, got %+v", meta)
	}
}
